package builtin

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/validation/pkg/constraint"
)

type lengthFunc func(v any) int

// stringLength counts runes; it accepts named string types.
func stringLength(v any) int {
	return utf8.RuneCountInString(reflect.ValueOf(v).String())
}

func reflectLength(v any) int {
	return reflect.ValueOf(v).Len()
}

type notNull struct{}

func newNotNull() constraint.Validator { return notNull{} }

func (notNull) Initialize(*constraint.Declaration) error { return nil }

func (notNull) IsValid(v any, _ *constraint.Context) bool { return v != nil }

type notEmpty struct {
	length lengthFunc
}

func newNotEmpty(length lengthFunc) func() constraint.Validator {
	return func() constraint.Validator { return notEmpty{length: length} }
}

func (notEmpty) Initialize(*constraint.Declaration) error { return nil }

func (n notEmpty) IsValid(v any, _ *constraint.Context) bool {
	return v != nil && n.length(v) > 0
}

type size struct {
	length   lengthFunc
	min, max int64
}

func newSize(length lengthFunc) func() constraint.Validator {
	return func() constraint.Validator { return &size{length: length} }
}

func (s *size) Initialize(decl *constraint.Declaration) error {
	lo, err := decl.Attributes.Int("min", 0)
	if err != nil {
		return err
	}
	hi, err := decl.Attributes.Int("max", math.MaxInt32)
	if err != nil {
		return err
	}
	if err := checkSizeBounds(lo, hi); err != nil {
		return err
	}
	s.min, s.max = lo, hi
	return nil
}

func (s *size) IsValid(v any, _ *constraint.Context) bool {
	n := int64(s.length(v))
	return n >= s.min && n <= s.max
}

func checkSizeBounds(lo, hi int64) error {
	switch {
	case lo < 0:
		return fmt.Errorf("%w: size min %d is negative", constraint.ErrInvalidArgument, lo)
	case hi < 0:
		return fmt.Errorf("%w: size max %d is negative", constraint.ErrInvalidArgument, hi)
	case hi < lo:
		return fmt.Errorf("%w: size max %d is less than min %d", constraint.ErrInvalidArgument, hi, lo)
	}
	return nil
}

type boundKind int

const (
	minBound boundKind = iota
	maxBound
)

// compareFunc compares an integral value with limit, returning -1, 0 or +1.
type compareFunc func(v any, limit int64) int

func signedValue(v any, limit int64) int {
	return cmp.Compare(reflect.ValueOf(v).Int(), limit)
}

func unsignedValue(v any, limit int64) int {
	if limit < 0 {
		return 1
	}
	return cmp.Compare(reflect.ValueOf(v).Uint(), uint64(limit))
}

type bound struct {
	kind    boundKind
	compare compareFunc
	limit   int64
}

func newBound(kind boundKind, compare compareFunc) func() constraint.Validator {
	return func() constraint.Validator { return &bound{kind: kind, compare: compare} }
}

func (b *bound) Initialize(decl *constraint.Declaration) error {
	if !decl.Attributes.Has("value") {
		return fmt.Errorf("%w: %s requires a value", constraint.ErrInvalidArgument, decl.Kind)
	}
	limit, err := decl.Attributes.Int("value", 0)
	if err != nil {
		return err
	}
	b.limit = limit
	return nil
}

func (b *bound) IsValid(v any, _ *constraint.Context) bool {
	c := b.compare(v, b.limit)
	if b.kind == minBound {
		return c >= 0
	}
	return c <= 0
}

// Flag modifies how a pattern is compiled.
type Flag string

const (
	FlagCaseInsensitive Flag = "CASE_INSENSITIVE"
	FlagMultiline       Flag = "MULTILINE"
	FlagDotAll          Flag = "DOT_MATCHES_ALL"
	// FlagLiteral matches the expression as plain text.
	FlagLiteral Flag = "LITERAL"
)

// compilePattern builds a regexp matching the whole input.
func compilePattern(expr string, flags []string) (*regexp.Regexp, error) {
	seen := make(map[Flag]bool, len(flags))
	var unsupported []string
	for _, f := range flags {
		switch flag := Flag(strings.ToUpper(f)); flag {
		case FlagCaseInsensitive, FlagMultiline, FlagDotAll, FlagLiteral:
			seen[flag] = true
		default:
			unsupported = append(unsupported, strconv.Quote(f))
		}
	}
	if len(unsupported) > 0 {
		return nil, fmt.Errorf("%w: unsupported pattern flags %s", constraint.ErrInvalidArgument, strings.Join(unsupported, ", "))
	}

	var mode strings.Builder
	for _, m := range []struct {
		flag Flag
		char byte
	}{{FlagCaseInsensitive, 'i'}, {FlagMultiline, 'm'}, {FlagDotAll, 's'}} {
		if seen[m.flag] {
			mode.WriteByte(m.char)
		}
	}
	if seen[FlagLiteral] {
		expr = regexp.QuoteMeta(expr)
	}

	src := `\A(?:` + expr + `)\z`
	if mode.Len() > 0 {
		src = "(?" + mode.String() + ")" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %w", constraint.ErrInvalidArgument, expr, err)
	}
	return re, nil
}

type pattern struct {
	re *regexp.Regexp
}

func newPattern() constraint.Validator { return &pattern{} }

func (p *pattern) Initialize(decl *constraint.Declaration) error {
	expr, err := decl.Attributes.String("regexp")
	if err != nil {
		return err
	}
	flags, err := decl.Attributes.Strings("flags")
	if err != nil {
		return err
	}
	p.re, err = compilePattern(expr, flags)
	return err
}

func (p *pattern) IsValid(v any, _ *constraint.Context) bool {
	return p.re.MatchString(reflect.ValueOf(v).String())
}

type direction int

const (
	future direction = iota
	past
)

type temporal struct {
	clock          Clock
	dir            direction
	includePresent bool
}

func newTemporal(clock Clock, dir direction) func() constraint.ConstraintValidator[time.Time] {
	return func() constraint.ConstraintValidator[time.Time] {
		return &temporal{clock: clock, dir: dir}
	}
}

func (t *temporal) Initialize(decl *constraint.Declaration) error {
	include, err := decl.Attributes.Bool("includePresent", false)
	if err != nil {
		return err
	}
	t.includePresent = include
	return nil
}

func (t *temporal) IsValid(v time.Time, _ *constraint.Context) bool {
	c := v.Compare(t.clock.Now())
	if t.dir == past {
		c = -c
	}
	return c > 0 || (c == 0 && t.includePresent)
}
