package constraint

import (
	"fmt"
	"math"
)

// Declaration is a resolved constraint declaration: the constraint kind plus
// the attribute values written where the constraint was declared.
//
// Declarations are compared by identity: the engine initializes one
// validator instance per *Declaration and reuses it.
type Declaration struct {
	Kind       string     `json:"kind" yaml:"kind"`
	Message    string     `json:"message,omitempty" yaml:"message,omitempty"`
	Groups     []string   `json:"groups,omitempty" yaml:"groups,omitempty"`
	Attributes Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Attributes holds constraint parameters such as "min" or "regexp".
// Values decoded from YAML or JSON are accepted in their generic forms.
type Attributes map[string]any

func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Int returns an integral attribute, or def when it is not set.
func (a Attributes) Int(name string, def int64) (int64, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt(name, uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt(name, n)
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, invalidArgument("attribute %q: %v is not an integer", name, n)
		}
		return int64(n), nil
	default:
		return 0, invalidArgument("attribute %q: %T is not an integer", name, v)
	}
}

func (a Attributes) Bool(name string, def bool) (bool, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalidArgument("attribute %q: %T is not a bool", name, v)
	}
	return b, nil
}

// String returns a string attribute. Missing attributes are an error.
func (a Attributes) String(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", invalidArgument("attribute %q is required", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidArgument("attribute %q: %T is not a string", name, v)
	}
	return s, nil
}

// Strings returns a list attribute; a missing attribute yields nil.
func (a Attributes) Strings(name string) ([]string, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, invalidArgument("attribute %q: element %v is not a string", name, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalidArgument("attribute %q: %T is not a list", name, v)
	}
}

func uintToInt(name string, n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, invalidArgument("attribute %q: %d overflows int64", name, n)
	}
	return int64(n), nil
}

func (d *Declaration) String() string {
	if len(d.Attributes) == 0 {
		return d.Kind
	}
	return fmt.Sprintf("%s%v", d.Kind, map[string]any(d.Attributes))
}
