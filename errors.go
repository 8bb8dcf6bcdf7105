package keyframe

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors. Every CompileError matches exactly one of these with
// errors.Is, as does any Report containing it.
var (
	ErrConfigurationIncomplete = errors.New("keyframe: configuration incomplete")
	ErrDuplicateTimestamp      = errors.New("keyframe: duplicate timestamp")
	ErrNoPriorValue            = errors.New("keyframe: no prior value to inherit")
	ErrUnknownField            = errors.New("keyframe: unknown field")
	ErrInvalidValue            = errors.New("keyframe: invalid value")
	ErrInvalidTime             = errors.New("keyframe: invalid time")
	ErrInvalidConfig           = errors.New("keyframe: invalid configuration")
)

// ErrorKind classifies a compile failure.
type ErrorKind uint8

const (
	ConfigurationIncomplete ErrorKind = iota // a required clip option has no value at any level
	DuplicateTimestamp                       // two entries for the same object, field and time
	NoPriorValueToInherit                    // inherit used on a field's first timestamp
	UnknownField                             // no Capability supplied for the field
	InvalidValue                             // Capability.Convert rejected the authored value
	InvalidTime                              // keyframe time is NaN or infinite
	InvalidConfig                            // a clip option is out of range (negative, NaN)
)

var kindNames = [...]string{
	ConfigurationIncomplete: "configuration incomplete",
	DuplicateTimestamp:      "duplicate timestamp",
	NoPriorValueToInherit:   "no prior value to inherit",
	UnknownField:            "unknown field",
	InvalidValue:            "invalid value",
	InvalidTime:             "invalid time",
	InvalidConfig:           "invalid configuration",
}

var kindSentinels = [...]error{
	ConfigurationIncomplete: ErrConfigurationIncomplete,
	DuplicateTimestamp:      ErrDuplicateTimestamp,
	NoPriorValueToInherit:   ErrNoPriorValue,
	UnknownField:            ErrUnknownField,
	InvalidValue:            ErrInvalidValue,
	InvalidTime:             ErrInvalidTime,
	InvalidConfig:           ErrInvalidConfig,
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// CompileError describes one failure for one object field. Time is NaN when
// the failure is not tied to a single keyframe.
type CompileError struct {
	Kind   ErrorKind
	Object string
	Field  string
	Time   float64
	Err    error
}

func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString("keyframe: ")
	b.WriteString(e.Object)
	if e.Field != "" {
		b.WriteByte('.')
		b.WriteString(e.Field)
	}
	if !math.IsNaN(e.Time) {
		fmt.Fprintf(&b, " @%g", e.Time)
	}
	b.WriteString(": ")
	switch {
	case e.Err == nil:
		b.WriteString(e.Kind.String())
	case errors.Is(e.Err, kindSentinels[e.Kind]):
		b.WriteString(strings.TrimPrefix(e.Err.Error(), "keyframe: "))
	default:
		b.WriteString(e.Kind.String())
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *CompileError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind, regardless of the cause.
func (e *CompileError) Is(target error) bool {
	return int(e.Kind) < len(kindSentinels) && target == kindSentinels[e.Kind]
}

// Report collects every compile failure. Dropped lists the objects that were
// left out of the timeline entirely.
type Report struct {
	Errors  []*CompileError
	Dropped []string
}

func (r *Report) Error() string {
	switch len(r.Errors) {
	case 0:
		return "keyframe: no errors"
	case 1:
		return r.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "keyframe: %d compile errors", len(r.Errors))
	for _, e := range r.Errors {
		b.WriteString("\n\t")
		b.WriteString(e.Error())
	}
	return b.String()
}

func (r *Report) Unwrap() []error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errs
}

// Object returns the errors reported for one object, in compile order.
func (r *Report) Object(object string) []*CompileError {
	var out []*CompileError
	for _, e := range r.Errors {
		if e.Object == object {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many errors of the given kind were reported.
func (r *Report) Count(kind ErrorKind) int {
	n := 0
	for _, e := range r.Errors {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
