// Package validation decides whether a student record is well formed.
//
// Validation runs in two stages:
//
//  1. Field-level checks, driven by the validate:"..." struct tags on
//     types.Student and checked by go-playground/validator.
//  2. Cross-field checks relating marks to weak areas. These only run
//     once every field-level check has passed, and stop at the first
//     violated rule.
//
// Validate has no side effects; callers persist only on a nil error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every *Error via errors.Is.
var ErrInvalid = errors.New("invalid student record")

// Rule identifies which check rejected a record.
type Rule string

const (
	RuleField                  Rule = "field"
	RuleWeakAreasWithoutMarks  Rule = "weak_areas_without_marks"
	RuleMissingWeakAreas       Rule = "missing_weak_areas"
	RuleTooManyWeakAreas       Rule = "too_many_weak_areas"
	RuleFailingWithoutWeakArea Rule = "failing_without_weak_area"
)

// MaxWeakAreas is the most weak areas a subject may list.
const MaxWeakAreas = 5

// Error is a rejected record. Field is the JSON path of the offending
// field, or the subject for per-subject rules, and empty for record-wide
// rules.
type Error struct {
	Rule    Rule
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves the whole process.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names ("guardian.contact") rather than
	// Go names ("Guardian.Contact").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks s and returns nil or an *Error.
func Validate(s types.Student) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validation.Validate: %w", err)
		}
		return fieldError(verrs)
	}

	return checkCrossField(s.Marks, s.WeakAreas)
}

// ─────────────────────────────────────────────────────────────────────────────
// checkCrossField enforces the marks / weak_areas rules, in order:
//
//	a. weak_areas without marks is rejected.
//	b. marks without weak_areas is rejected if any recorded score is failing.
//	c. with both, each subject may list at most five weak areas, and a
//	   failing subject must list at least one.
//
// A passing subject that lists weak areas is accepted.
// ─────────────────────────────────────────────────────────────────────────────
func checkCrossField(marks *types.Marks, weak *types.WeakAreas) error {
	switch {
	case marks == nil && weak == nil:
		return nil

	case marks == nil:
		return &Error{
			Rule:    RuleWeakAreasWithoutMarks,
			Field:   "weak_areas",
			Message: "weak areas cannot exist without marks",
		}

	case weak == nil:
		for _, s := range types.Subjects {
			if failing(*marks, s) {
				return &Error{
					Rule:    RuleMissingWeakAreas,
					Field:   string(s),
					Message: "weak areas must exist for marks less than 30",
				}
			}
		}
		return nil
	}

	for _, s := range types.Subjects {
		areas := weak.For(s)
		if len(areas) > MaxWeakAreas {
			return &Error{
				Rule:    RuleTooManyWeakAreas,
				Field:   string(s),
				Message: fmt.Sprintf("too many weak areas in %s: at most %d allowed", s, MaxWeakAreas),
			}
		}
		if failing(*marks, s) && len(areas) == 0 {
			return &Error{
				Rule:    RuleFailingWithoutWeakArea,
				Field:   string(s),
				Message: fmt.Sprintf("marks less than 30 must have at least one weak area (%s)", s),
			}
		}
	}

	return nil
}

func failing(m types.Marks, s types.Subject) bool {
	score, ok := m.Score(s)
	return ok && score < types.PassMark
}

// fieldError folds every failing field into one Error so the client sees
// all problems at once.
func fieldError(errs validator.ValidationErrors) *Error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fieldMessage(e))
	}

	return &Error{
		Rule:    RuleField,
		Field:   fieldPath(errs[0]),
		Message: strings.Join(msgs, ", "),
	}
}

func fieldMessage(e validator.FieldError) string {
	field := fieldPath(e)

	switch e.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is required", field)
	case "oneof":
		return fmt.Sprintf("field %s must be one of [%s]", field, e.Param())
	case "gte", "lte":
		return fmt.Sprintf("field %s must be between 0 and 50", field)
	case "max":
		return fmt.Sprintf("field %s must have at most %s entries", field, e.Param())
	case "len":
		return fmt.Sprintf("field %s must be exactly %s characters", field, e.Param())
	default:
		return fmt.Sprintf("field %s is invalid", field)
	}
}

// fieldPath drops the root struct name from the namespace:
// "Student.guardian.contact" becomes "guardian.contact".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
