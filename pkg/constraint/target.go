package constraint

import (
	"reflect"
	"slices"
	"time"
)

// Target is the set of runtime types a validator accepts.
//
// A type target matches every type assignable to it, so interface types act
// as supertypes. A kind target matches every type of the listed reflect
// kinds; it stands for "any slice" or "any map" regardless of element types.
type Target struct {
	name  string
	typ   reflect.Type
	kinds []reflect.Kind
}

// TargetType returns a target matching T and, if T is an interface, every type implementing it.
func TargetType[T any]() Target {
	t := reflect.TypeFor[T]()
	return Target{name: t.String(), typ: t}
}

// TargetKinds returns a target matching every type of the given kinds.
func TargetKinds(name string, kinds ...reflect.Kind) Target {
	return Target{name: name, kinds: slices.Clone(kinds)}
}

var (
	TargetAny      = TargetType[any]()
	TargetString   = TargetKinds("string", reflect.String)
	TargetSequence = TargetKinds("sequence", reflect.Slice, reflect.Array)
	TargetMap      = TargetKinds("map", reflect.Map)
	TargetSigned   = TargetKinds("signed integer",
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64)
	TargetUnsigned = TargetKinds("unsigned integer",
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr)
	TargetTime = TargetType[time.Time]()
	// TargetParameters matches the argument list of a cross-parameter call.
	TargetParameters = TargetType[[]any]()
)

func (t Target) String() string { return t.name }

// Matches reports whether a value of runtime type rt is accepted.
func (t Target) Matches(rt reflect.Type) bool {
	if rt == nil {
		return false
	}
	if t.typ != nil {
		return rt.AssignableTo(t.typ)
	}
	return slices.Contains(t.kinds, rt.Kind())
}

// covers reports whether every type matched by o is also matched by t.
func (t Target) covers(o Target) bool {
	switch {
	case t.typ != nil && o.typ != nil:
		return o.typ.AssignableTo(t.typ)
	case t.typ != nil:
		return t.typ.Kind() == reflect.Interface && t.typ.NumMethod() == 0
	case o.typ != nil:
		return o.typ.Kind() != reflect.Interface && slices.Contains(t.kinds, o.typ.Kind())
	default:
		for _, k := range o.kinds {
			if !slices.Contains(t.kinds, k) {
				return false
			}
		}
		return true
	}
}

func (t Target) same(o Target) bool {
	return t.covers(o) && o.covers(t)
}

// moreSpecific reports whether t matches a strict subset of what o matches.
func (t Target) moreSpecific(o Target) bool {
	return o.covers(t) && !t.covers(o)
}
