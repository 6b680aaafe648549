package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/path"
)

var (
	ErrInvalidCheckFile = errors.New("invalid check file")
	ErrChecksFailed     = errors.New("checks did not pass")
)

// Value types accepted in a check's "type" field.
const (
	TypeAuto   = ""
	TypeString = "string"
	TypeInt    = "int"
	TypeUint   = "uint"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeTime   = "time"
	TypeNull   = "null"
)

// CheckFile is the document read by the validate command.
//
//	checks:
//	  - name: username
//	    path: user.name
//	    value: jo
//	    constraints:
//	      - kind: size
//	        attributes: {min: 3, max: 16}
type CheckFile struct {
	Checks []Check `yaml:"checks"`
}

// Check applies a list of constraint declarations to one value.
type Check struct {
	Name        string                    `yaml:"name"`
	Path        string                    `yaml:"path,omitempty"`
	Type        string                    `yaml:"type,omitempty"`
	Value       any                       `yaml:"value"`
	Constraints []*constraint.Declaration `yaml:"constraints"`
}

// compiledCheck is a Check with its path parsed and value converted.
type compiledCheck struct {
	name  string
	path  path.Path
	value any
	decls []*constraint.Declaration
}

// LoadChecks decodes and checks a check file. Unknown fields are rejected.
func LoadChecks(r io.Reader) (*CheckFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f CheckFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCheckFile)
		}
		return nil, errors.Join(ErrInvalidCheckFile, err)
	}
	if len(f.Checks) == 0 {
		return nil, fmt.Errorf("%w: no checks defined", ErrInvalidCheckFile)
	}
	return &f, nil
}

func loadChecksFile(name string) (*CheckFile, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open check file %q: %w", name, err)
	}
	defer fh.Close()
	return LoadChecks(fh)
}

func (f *CheckFile) compile() ([]compiledCheck, error) {
	out := make([]compiledCheck, 0, len(f.Checks))
	for i, c := range f.Checks {
		cc, err := c.compile()
		if err != nil {
			return nil, fmt.Errorf("%w: check #%d (%s): %w", ErrInvalidCheckFile, i+1, c.Name, err)
		}
		out = append(out, cc)
	}
	return out, nil
}

func (c Check) compile() (compiledCheck, error) {
	if strings.TrimSpace(c.Name) == "" {
		return compiledCheck{}, errors.New("name is required")
	}
	if len(c.Constraints) == 0 {
		return compiledCheck{}, errors.New("at least one constraint is required")
	}
	for i, d := range c.Constraints {
		if d == nil || d.Kind == "" {
			return compiledCheck{}, fmt.Errorf("constraint #%d has no kind", i+1)
		}
	}

	var p path.Path
	if c.Path != "" {
		var err error
		if p, err = path.FromProperties(strings.Split(c.Path, path.Separator)...); err != nil {
			return compiledCheck{}, fmt.Errorf("path %q: %w", c.Path, err)
		}
	}

	v, err := convertValue(c.Type, c.Value)
	if err != nil {
		return compiledCheck{}, err
	}
	return compiledCheck{name: c.Name, path: p, value: v, decls: c.Constraints}, nil
}

// convertValue turns a YAML-decoded value into the Go type named by typ.
func convertValue(typ string, v any) (any, error) {
	switch strings.ToLower(typ) {
	case TypeAuto:
		return v, nil
	case TypeNull:
		return nil, nil
	case TypeString:
		if v == nil {
			return "", nil
		}
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case TypeInt:
		return toInt(v)
	case TypeUint:
		n, err := toInt(v)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("value %d is negative", n)
		}
		return uint64(n), nil
	case TypeFloat:
		switch x := v.(type) {
		case int:
			return float64(x), nil
		case float64:
			return x, nil
		case string:
			return strconv.ParseFloat(x, 64)
		}
	case TypeBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case string:
			return strconv.ParseBool(x)
		}
	case TypeTime:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			t, err := time.Parse(time.RFC3339, x)
			if err != nil {
				return nil, fmt.Errorf("value %q is not an RFC 3339 timestamp: %w", x, err)
			}
			return t, nil
		}
	default:
		return nil, fmt.Errorf("unknown value type %q", typ)
	}
	return nil, fmt.Errorf("value %v (%T) cannot be converted to %s", v, v, typ)
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", x)
		}
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) || x >= math.MaxInt64 || x < math.MinInt64 {
			return 0, fmt.Errorf("value %v is not an int64", x)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	}
	return 0, fmt.Errorf("value %v (%T) cannot be converted to int", v, v)
}
