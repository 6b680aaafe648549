package builtin

import (
	"time"

	"github.com/dmitrymomot/validation/pkg/constraint"
)

// Constraint kinds registered by Register.
const (
	KindNotNull  = "not_null"
	KindNotEmpty = "not_empty"
	KindSize     = "size"
	KindMin      = "min"
	KindMax      = "max"
	KindPattern  = "pattern"
	KindFuture   = "future"
	KindPast     = "past"
)

// Default message templates. They are keys into Messages.
const (
	MessageNotNull  = "{validation.constraints.NotNull.message}"
	MessageNotEmpty = "{validation.constraints.NotEmpty.message}"
	MessageSize     = "{validation.constraints.Size.message}"
	MessageMin      = "{validation.constraints.Min.message}"
	MessageMax      = "{validation.constraints.Max.message}"
	MessagePattern  = "{validation.constraints.Pattern.message}"
	MessageFuture   = "{validation.constraints.Future.message}"
	MessagePast     = "{validation.constraints.Past.message}"
)

// Messages returns the default English message bundle.
func Messages() map[string]string {
	return map[string]string{
		"validation.constraints.NotNull.message":  "must not be null",
		"validation.constraints.NotEmpty.message": "must not be empty",
		"validation.constraints.Size.message":     "size must be between {min} and {max}",
		"validation.constraints.Min.message":      "must be greater than or equal to {value}",
		"validation.constraints.Max.message":      "must be less than or equal to {value}",
		"validation.constraints.Pattern.message":  `must match "{regexp}"`,
		"validation.constraints.Future.message":   "must be a future date",
		"validation.constraints.Past.message":     "must be a past date",
	}
}

// Clock supplies the current time to the temporal validators.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

type options struct {
	clock Clock
}

// Option configures the built-in definitions.
type Option func(*options)

// WithClock sets the clock used by future and past. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// Definitions returns the built-in constraint definitions.
func Definitions(opts ...Option) []constraint.Definition {
	o := options{clock: SystemClock}
	for _, opt := range opts {
		opt(&o)
	}

	return []constraint.Definition{
		{
			Kind:           KindNotNull,
			DefaultMessage: MessageNotNull,
			Candidates: []constraint.Candidate{
				constraint.ForTarget(constraint.TargetAny, newNotNull, constraint.AcceptsAbsent()),
			},
		},
		{
			Kind:           KindNotEmpty,
			DefaultMessage: MessageNotEmpty,
			Candidates: []constraint.Candidate{
				constraint.ForTarget(constraint.TargetString, newNotEmpty(stringLength), constraint.AcceptsAbsent()),
				constraint.ForTarget(constraint.TargetSequence, newNotEmpty(reflectLength), constraint.AcceptsAbsent()),
				constraint.ForTarget(constraint.TargetMap, newNotEmpty(reflectLength), constraint.AcceptsAbsent()),
			},
		},
		{
			Kind:           KindSize,
			DefaultMessage: MessageSize,
			Candidates: []constraint.Candidate{
				constraint.ForTarget(constraint.TargetString, newSize(stringLength)),
				constraint.ForTarget(constraint.TargetSequence, newSize(reflectLength)),
				constraint.ForTarget(constraint.TargetMap, newSize(reflectLength)),
			},
		},
		{
			Kind:           KindMin,
			DefaultMessage: MessageMin,
			Candidates: []constraint.Candidate{
				constraint.ForTarget(constraint.TargetSigned, newBound(minBound, signedValue)),
				constraint.ForTarget(constraint.TargetUnsigned, newBound(minBound, unsignedValue)),
			},
		},
		{
			Kind:           KindMax,
			DefaultMessage: MessageMax,
			Candidates: []constraint.Candidate{
				constraint.ForTarget(constraint.TargetSigned, newBound(maxBound, signedValue)),
				constraint.ForTarget(constraint.TargetUnsigned, newBound(maxBound, unsignedValue)),
			},
		},
		{
			Kind:           KindPattern,
			DefaultMessage: MessagePattern,
			Candidates: []constraint.Candidate{
				constraint.ForTarget(constraint.TargetString, newPattern),
			},
		},
		{
			Kind:           KindFuture,
			DefaultMessage: MessageFuture,
			Candidates: []constraint.Candidate{
				constraint.For(newTemporal(o.clock, future)),
			},
		},
		{
			Kind:           KindPast,
			DefaultMessage: MessagePast,
			Candidates: []constraint.Candidate{
				constraint.For(newTemporal(o.clock, past)),
			},
		},
	}
}

// Register adds every built-in definition to r.
func Register(r *constraint.Registry, opts ...Option) error {
	for _, def := range Definitions(opts...) {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}
