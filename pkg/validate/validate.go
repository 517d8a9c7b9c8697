// Package validate implements the client-side parameter checks shared by the
// endpoint wrappers. Every check runs before a request is built, so a violated
// constraint never costs a network round-trip.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

// Validation failure kinds.
const (
	KindRequired          Kind = "required"
	KindMutuallyExclusive Kind = "mutually_exclusive"
	KindEitherOr          Kind = "either_or"
	KindConditional       Kind = "conditional"
	KindRange             Kind = "range"
	KindFormat            Kind = "format"
)

// Error is returned when caller-supplied parameters violate a documented
// constraint. Fields names the parameter(s) involved.
type Error struct {
	Kind    Kind
	Fields  []string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Required reports a missing parameter when present is false.
func Required(field string, present bool) error {
	if present {
		return nil
	}
	return &Error{
		Kind:    KindRequired,
		Fields:  []string{field},
		Message: fmt.Sprintf("Parameter %q is required", field),
	}
}

// MutuallyExclusive reports that two parameter groups were both supplied.
func MutuallyExclusive(group1, group2 string, has1, has2 bool) error {
	if !(has1 && has2) {
		return nil
	}
	return &Error{
		Kind:    KindMutuallyExclusive,
		Fields:  []string{group1, group2},
		Message: fmt.Sprintf("Parameters %s and %s are mutually exclusive", group1, group2),
	}
}

// EitherOr reports that neither of two parameter groups was supplied.
func EitherOr(group1, group2 string, has1, has2 bool) error {
	if has1 || has2 {
		return nil
	}
	return &Error{
		Kind:    KindEitherOr,
		Fields:  []string{group1, group2},
		Message: fmt.Sprintf("Either %s or %s must be provided", group1, group2),
	}
}

// Conditional reports that required must accompany dependent.
func Conditional(dependent, required string, hasDependent, hasRequired bool) error {
	if !hasDependent || hasRequired {
		return nil
	}
	return &Error{
		Kind:    KindConditional,
		Fields:  []string{dependent, required},
		Message: fmt.Sprintf("Parameter %q is required when %q is provided", required, dependent),
	}
}

// Number is the set of numeric types Range accepts.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Range checks min <= *v <= max. A nil v is treated as absent and passes.
func Range[T Number](field string, v *T, lo, hi T) error {
	if v == nil || (*v >= lo && *v <= hi) {
		return nil
	}
	return &Error{
		Kind:    KindRange,
		Fields:  []string{field},
		Message: fmt.Sprintf("Parameter %q must be between %v and %v", field, lo, hi),
	}
}

// Max checks *v <= hi. A nil v passes.
func Max[T Number](field string, v *T, hi T) error {
	if v == nil || *v <= hi {
		return nil
	}
	return &Error{
		Kind:    KindRange,
		Fields:  []string{field},
		Message: fmt.Sprintf("Parameter %q cannot exceed %v", field, hi),
	}
}

// Length checks that s has between lo and hi characters.
func Length(field, s string, lo, hi int) error {
	n := len([]rune(s))
	if n >= lo && n <= hi {
		return nil
	}
	return &Error{
		Kind:    KindRange,
		Fields:  []string{field},
		Message: fmt.Sprintf("Parameter %q must be between %d and %d characters", field, lo, hi),
	}
}

var yearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)

// YearMonth checks every comma-separated entry of value against YYYY-MM.
// An empty value passes.
func YearMonth(field, value string) error {
	if value == "" {
		return nil
	}
	for _, p := range strings.Split(value, ",") {
		if !yearMonth.MatchString(strings.TrimSpace(p)) {
			return &Error{
				Kind:    KindFormat,
				Fields:  []string{field},
				Message: fmt.Sprintf("Parameter %q has invalid YYYY-MM value %q", field, p),
			}
		}
	}
	return nil
}

// PeriodsOrRange enforces the periods / (startDate and endDate) rule shared by
// the crime and safety statistics endpoints, including YYYY-MM formatting.
func PeriodsOrRange(periods, startDate, endDate string) error {
	if periods == "" && (startDate == "" || endDate == "") {
		return &Error{
			Kind:    KindEitherOr,
			Fields:  []string{"periods", "startDate", "endDate"},
			Message: `Either "periods" or both "startDate" and "endDate" must be provided`,
		}
	}
	return First(
		YearMonth("periods", periods),
		YearMonth("startDate", startDate),
		YearMonth("endDate", endDate),
	)
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
