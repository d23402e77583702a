package form

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the input type a field accepts.
type Kind int

const (
	// String accepts free text.
	String Kind = iota

	// Int accepts a whole number, optionally bounded by Min/Max.
	Int

	// Bool accepts a true/false answer.
	Bool

	// Select accepts one value from the field's Options.
	Select
)

// Per-field error codes carried by ValidationError.
const (
	CodeRequired      = "required"
	CodeNotANumber    = "not_a_number"
	CodeOutOfRange    = "out_of_range"
	CodeNotABool      = "not_a_bool"
	CodeInvalidOption = "invalid_option"
)

// Field describes a single form input.
type Field struct {
	// Name keys the field in submissions and in Values.
	Name string

	// Kind selects the coercion and validation rules.
	Kind Kind

	// Label is the human-readable name front-ends display. Falls back to
	// Name when empty.
	Label string

	// Description is an optional help line shown with the field.
	Description string

	// Required fields must be submitted non-empty.
	Required bool

	// Secret fields are rendered with no-echo / password masking.
	Secret bool

	// Default is the raw value front-ends pre-fill. Validation does not
	// apply it; an empty optional field simply stays absent.
	Default string

	// Min and Max bound Int fields (inclusive). Both zero means unbounded.
	Min int
	Max int

	// Options are the permitted values for Select fields.
	Options []string
}

// Bounded reports whether an Int field carries range limits.
func (f Field) Bounded() bool {
	return f.Kind == Int && (f.Min != 0 || f.Max != 0)
}

// DisplayLabel returns the label front-ends should render.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Schema is the ordered set of fields for one wizard step.
type Schema struct {
	// Name identifies the step the schema belongs to (e.g. "user").
	Name string

	// Title is the heading front-ends show above the form.
	Title string

	// Fields in display order.
	Fields []Field
}

// Field returns the named field, or false when the schema has no such field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ValidationError reports the fields of a submission that failed, keyed by
// field name with a short error code per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	// Deterministic order so the message is stable in logs and tests
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+e.Fields[name])
	}
	return "form validation failed: " + strings.Join(parts, ", ")
}

// Validate coerces raw submitted input into typed Values, enforcing the
// schema's rules. Raw keys the schema does not declare are ignored. Optional
// fields submitted empty are omitted from the result so callers can apply
// their own defaults. On failure it returns a ValidationError with one code
// per offending field.
func (s Schema) Validate(raw map[string]string) (Values, error) {
	values := make(Values, len(s.Fields))
	fieldErrors := make(map[string]string)

	for _, field := range s.Fields {
		text, present := raw[field.Name]
		if !present || text == "" {
			if field.Required {
				fieldErrors[field.Name] = CodeRequired
			}
			continue
		}

		switch field.Kind {
		case String:
			values[field.Name] = text

		case Int:
			n, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				fieldErrors[field.Name] = CodeNotANumber
				continue
			}
			if field.Bounded() && (n < field.Min || n > field.Max) {
				fieldErrors[field.Name] = CodeOutOfRange
				continue
			}
			values[field.Name] = n

		case Bool:
			b, err := strconv.ParseBool(strings.TrimSpace(text))
			if err != nil {
				fieldErrors[field.Name] = CodeNotABool
				continue
			}
			values[field.Name] = b

		case Select:
			if !contains(field.Options, text) {
				fieldErrors[field.Name] = CodeInvalidOption
				continue
			}
			values[field.Name] = text

		default:
			// Unreachable with the declared kinds; fail loudly if a new
			// kind is added without a coercion rule.
			panic(fmt.Sprintf("form: unhandled field kind %d", field.Kind))
		}
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}
	return values, nil
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
