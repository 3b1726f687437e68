// Package forms is a declarative multi-step form engine. Each wizard declares
// its steps once; the engine owns touched/error bookkeeping and gates
// advancement, replacing the per-form ad hoc copies of that logic.
package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"agora/utils"
)

// Validator checks one field value and reports a user-facing message.
type Validator func(value string) error

type Field struct {
	Name       string
	Label      string
	Required   bool
	Validators []Validator
}

type Step struct {
	Name   string
	Fields []Field
}

type Schema struct {
	Name  string
	Steps []Step
}

// Engine tracks one wizard session: current step, entered values, which
// fields have been touched, and the latest error per field.
type Engine struct {
	schema  Schema
	step    int
	values  map[string]string
	touched map[string]bool
	errs    map[string]string
}

func NewEngine(schema Schema) *Engine {
	return &Engine{
		schema:  schema,
		values:  make(map[string]string),
		touched: make(map[string]bool),
		errs:    make(map[string]string),
	}
}

func (e *Engine) CurrentStep() int { return e.step }

func (e *Engine) StepCount() int { return len(e.schema.Steps) }

// SetValue records a value and marks the field touched.
func (e *Engine) SetValue(field, value string) {
	e.values[field] = value
	e.touched[field] = true
	delete(e.errs, field)
}

func (e *Engine) Value(field string) string { return e.values[field] }

func (e *Engine) Touched(field string) bool { return e.touched[field] }

// FieldError returns the last validation message for a field, if any.
func (e *Engine) FieldError(field string) string { return e.errs[field] }

// ValidateStep runs every validator of the given step, recording per-field
// errors. Returns true when the step is clean.
func (e *Engine) ValidateStep(step int) bool {
	if step < 0 || step >= len(e.schema.Steps) {
		return false
	}

	ok := true
	for _, f := range e.schema.Steps[step].Fields {
		value := strings.TrimSpace(e.values[f.Name])
		e.touched[f.Name] = true

		if value == "" {
			if f.Required {
				e.errs[f.Name] = f.Label + " is required"
				ok = false
			}
			continue
		}

		for _, v := range f.Validators {
			if err := v(value); err != nil {
				e.errs[f.Name] = err.Error()
				ok = false
				break
			}
		}
	}
	return ok
}

// Next validates the current step and advances only when it is clean.
func (e *Engine) Next() bool {
	if !e.ValidateStep(e.step) {
		return false
	}
	if e.step < len(e.schema.Steps)-1 {
		e.step++
	}
	return true
}

func (e *Engine) Prev() {
	if e.step > 0 {
		e.step--
	}
}

// Complete reports whether every step validates.
func (e *Engine) Complete() bool {
	for i := range e.schema.Steps {
		if !e.ValidateStep(i) {
			return false
		}
	}
	return true
}

// Errors returns field name → message for everything currently invalid.
func (e *Engine) Errors() map[string]string {
	out := make(map[string]string, len(e.errs))
	for k, v := range e.errs {
		out[k] = v
	}
	return out
}

// ValidateAll is the submission path: load the payload, run every step.
func ValidateAll(schema Schema, values map[string]string) (map[string]string, bool) {
	e := NewEngine(schema)
	for k, v := range values {
		e.SetValue(k, v)
	}
	ok := e.Complete()
	return e.Errors(), ok
}

// --- validators ---

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func MinLen(n int) Validator {
	return func(value string) error {
		if len(value) < n {
			return fmt.Errorf("must be at least %d characters", n)
		}
		return nil
	}
}

func MaxLen(n int) Validator {
	return func(value string) error {
		if len(value) > n {
			return fmt.Errorf("must be at most %d characters", n)
		}
		return nil
	}
}

func Email() Validator {
	return func(value string) error {
		if !emailRe.MatchString(value) {
			return fmt.Errorf("must be a valid email address")
		}
		return nil
	}
}

func Matches(re *regexp.Regexp, msg string) Validator {
	return func(value string) error {
		if !re.MatchString(value) {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func NumberBetween(lo, hi float64) Validator {
	return func(value string) error {
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}

func OneOf(allowed ...string) Validator {
	return func(value string) error {
		if utils.Contains(allowed, value) {
			return nil
		}
		return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
	}
}
