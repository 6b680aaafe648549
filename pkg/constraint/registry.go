package constraint

import (
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

// Definition registers a constraint kind with its candidate validators.
// Candidate order matters only for absent values: the first absent-aware
// candidate handles them.
type Definition struct {
	Kind           string
	DefaultMessage string
	Candidates     []Candidate
}

// Resolution is the outcome of a successful dispatch.
type Resolution struct {
	Kind string
	// Index identifies the chosen candidate within its definition.
	Index     int
	Candidate Candidate
	// Value is the normalized value: pointers dereferenced, nil when absent.
	Value          any
	Absent         bool
	Skip           bool
	DefaultMessage string
}

// Registry maps constraint kinds to their candidate validators.
//
// Lookups read an immutable snapshot and never lock. Register copies the
// snapshot, so it is meant for setup time.
type Registry struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[map[string]*Definition]
}

func NewRegistry() *Registry {
	r := &Registry{}
	empty := map[string]*Definition{}
	r.snapshot.Store(&empty)
	return r
}

// Register adds a constraint kind. Registering a kind twice, a definition
// without candidates or two candidates with the same target is an error.
func (r *Registry) Register(def Definition) error {
	if def.Kind == "" {
		return invalidArgument("constraint kind is empty")
	}
	if len(def.Candidates) == 0 {
		return invalidArgument("constraint %q has no validators", def.Kind)
	}
	for i, c := range def.Candidates {
		if c.factory == nil {
			return invalidArgument("constraint %q: validator %d has no factory", def.Kind, i)
		}
		for _, prev := range def.Candidates[:i] {
			if prev.target.same(c.target) {
				return invalidArgument("constraint %q: validators %s and %s target the same type",
					def.Kind, prev.target, c.target)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.snapshot.Load()
	if _, ok := current[def.Kind]; ok {
		return invalidArgument("constraint %q is already registered", def.Kind)
	}
	next := maps.Clone(current)
	def.Candidates = slices.Clone(def.Candidates)
	next[def.Kind] = &def
	r.snapshot.Store(&next)
	return nil
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	return slices.Sorted(maps.Keys(*r.snapshot.Load()))
}

// Definition returns a copy of the registered definition for kind.
func (r *Registry) Definition(kind string) (Definition, bool) {
	def, ok := (*r.snapshot.Load())[kind]
	if !ok {
		return Definition{}, false
	}
	out := *def
	out.Candidates = slices.Clone(def.Candidates)
	return out, true
}

// Resolve selects the validator for kind and the runtime type of value.
//
// Absent values (nil or nil pointers) go to the first absent-aware candidate;
// without one the resolution is marked Skip. Otherwise exactly one candidate
// must match, after discarding candidates that are less specific than
// another match. Failures are reported as *ResolutionError.
func (r *Registry) Resolve(kind string, value any) (Resolution, error) {
	def, ok := (*r.snapshot.Load())[kind]
	if !ok {
		return Resolution{}, &ResolutionError{Kind: kind}
	}

	value, absent := normalize(value)
	res := Resolution{Kind: kind, Value: value, Absent: absent, DefaultMessage: def.DefaultMessage}

	if absent {
		for i, c := range def.Candidates {
			if c.acceptsAbsent {
				res.Index, res.Candidate = i, c
				return res, nil
			}
		}
		res.Skip = true
		return res, nil
	}

	rt := reflect.TypeOf(value)
	var matched []int
	for i, c := range def.Candidates {
		if c.target.Matches(rt) {
			matched = append(matched, i)
		}
	}
	if len(matched) > 1 {
		matched = mostSpecific(def.Candidates, matched)
	}

	switch len(matched) {
	case 0:
		return Resolution{}, &ResolutionError{Kind: kind, Type: rt}
	case 1:
		res.Index, res.Candidate = matched[0], def.Candidates[matched[0]]
		return res, nil
	default:
		names := make([]string, len(matched))
		for i, idx := range matched {
			names[i] = def.Candidates[idx].target.String()
		}
		return Resolution{}, &ResolutionError{Kind: kind, Type: rt, Candidates: names}
	}
}

func mostSpecific(all []Candidate, matched []int) []int {
	out := make([]int, 0, len(matched))
	for _, i := range matched {
		dominated := false
		for _, j := range matched {
			if i != j && all[j].target.moreSpecific(all[i].target) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, i)
		}
	}
	return out
}

// normalize dereferences pointers and reports whether the value is absent.
func normalize(value any) (any, bool) {
	for {
		if value == nil {
			return nil, true
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Pointer {
			return value, false
		}
		if rv.IsNil() {
			return nil, true
		}
		value = rv.Elem().Interface()
	}
}
