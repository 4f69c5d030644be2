// Package wizard implements the multi-step form controller shared by the
// signup, reservation and review flows.
//
// A wizard walks steps 0..N-1 and ends in a submitted state. Forward moves
// are gated by the current step's validator; backward moves are not. Submit
// is only accepted on the last non-terminal step, waits the configured
// delay, then hands the collected values to the definition's Complete func.
package wizard

import (
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"coursehub/backend/storage"
	"coursehub/backend/validation"
)

var (
	ErrInvalidStep   = errors.New("step has invalid fields")
	ErrLocked        = errors.New("submission in progress")
	ErrSubmitted     = errors.New("form already submitted")
	ErrFirstStep     = errors.New("already at the first step")
	ErrNotSubmitStep = errors.New("submit is only available on the final step")
	ErrSubmitStep    = errors.New("final step must be submitted")
	ErrUnknownField  = errors.New("field is not on the current step")
)

// SubmitField is the error key for form-level submission failures.
const SubmitField = "submit"

const defaultSubmitMessage = "Submission failed. Please try again."

type Values map[string]string

// Step is one page of a wizard. Validate returns the field errors for the
// step; an empty map means the step is complete.
type Step struct {
	Title    string
	Fields   []string
	Validate func(Values) validation.Errors
	// Terminal steps are receipts reached only through a successful submit.
	Terminal bool
}

type Definition[T any] struct {
	Name     string
	Steps    []Step
	Complete func(Values) (T, error)
	// Delay is the pause before Complete runs.
	Delay time.Duration
	// Secret fields are never echoed back in State.
	Secret []string
}

type Wizard[T any] struct {
	def   Definition[T]
	sleep func(time.Duration)

	mu        sync.Mutex
	index     int
	values    Values
	errors    validation.Errors
	locked    bool
	submitted bool
	result    T
}

// New builds a wizard positioned on the first step. Initial values for
// unknown fields are ignored.
func New[T any](def Definition[T], initial Values) *Wizard[T] {
	w := &Wizard[T]{
		def:    def,
		sleep:  time.Sleep,
		values: Values{},
		errors: validation.Errors{},
	}
	for field, value := range initial {
		if w.known(field) {
			w.values[field] = value
		}
	}
	return w
}

func (w *Wizard[T]) Name() string {
	return w.def.Name
}

// Set stores a value for a field of the current step and clears that
// field's error and any form-level submit error. It never re-validates.
func (w *Wizard[T]) Set(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.guard(); err != nil {
		return err
	}
	if !slices.Contains(w.def.Steps[w.index].Fields, field) {
		return ErrUnknownField
	}
	w.values[field] = value
	delete(w.errors, field)
	delete(w.errors, SubmitField)
	return nil
}

// Next validates the current step and advances by one on success.
func (w *Wizard[T]) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.guard(); err != nil {
		return err
	}
	if w.index >= w.submitIndex() {
		return ErrSubmitStep
	}
	if !w.validateCurrent() {
		return ErrInvalidStep
	}
	w.index++
	return nil
}

// Back moves one step backwards without validating.
func (w *Wizard[T]) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.guard(); err != nil {
		return err
	}
	if w.index == 0 {
		return ErrFirstStep
	}
	w.index--
	return nil
}

// Submit re-validates the submit step, locks the wizard for the delay and
// runs Complete. A failure leaves the wizard on the same step with the
// submit error set, so the caller may retry.
func (w *Wizard[T]) Submit() (T, error) {
	var zero T

	w.mu.Lock()
	if err := w.guard(); err != nil {
		w.mu.Unlock()
		return zero, err
	}
	if w.index != w.submitIndex() {
		w.mu.Unlock()
		return zero, ErrNotSubmitStep
	}
	if !w.validateCurrent() {
		w.mu.Unlock()
		return zero, ErrInvalidStep
	}
	w.locked = true
	values := maps.Clone(w.values)
	w.mu.Unlock()

	if w.def.Delay > 0 {
		w.sleep(w.def.Delay)
	}
	result, err := w.def.Complete(values)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.locked = false

	if err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			maps.Copy(w.errors, fields)
		} else {
			w.errors[SubmitField] = submitMessage(err)
		}
		return zero, err
	}

	w.submitted = true
	w.result = result
	if w.index+1 < len(w.def.Steps) {
		w.index++
	}
	return result, nil
}

func (w *Wizard[T]) Errors() validation.Errors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.errors)
}

func (w *Wizard[T]) Result() (T, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result, w.submitted
}

// State is a snapshot of a wizard for display.
type State struct {
	Name      string            `json:"name"`
	Step      int               `json:"step"`
	StepTitle string            `json:"stepTitle"`
	Steps     []string          `json:"steps"`
	Fields    []string          `json:"fields"`
	Values    Values            `json:"values"`
	Errors    validation.Errors `json:"errors"`
	Locked    bool              `json:"locked"`
	Submitted bool              `json:"submitted"`
	CanBack   bool              `json:"canBack"`
	CanSubmit bool              `json:"canSubmit"`
	Result    any               `json:"result,omitempty"`
}

func (w *Wizard[T]) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	titles := make([]string, len(w.def.Steps))
	for i, s := range w.def.Steps {
		titles[i] = s.Title
	}

	values := Values{}
	for field, value := range w.values {
		if !slices.Contains(w.def.Secret, field) {
			values[field] = value
		}
	}

	st := State{
		Name:      w.def.Name,
		Step:      w.index,
		Steps:     titles,
		Values:    values,
		Errors:    maps.Clone(w.errors),
		Locked:    w.locked,
		Submitted: w.submitted,
		CanBack:   w.index > 0 && !w.locked && !w.submitted,
		CanSubmit: w.index == w.submitIndex() && !w.locked && !w.submitted,
	}
	if w.index < len(w.def.Steps) {
		st.StepTitle = w.def.Steps[w.index].Title
		st.Fields = slices.Clone(w.def.Steps[w.index].Fields)
	}
	if w.submitted {
		st.Result = w.result
	}
	return st
}

func (w *Wizard[T]) guard() error {
	if w.locked {
		return ErrLocked
	}
	if w.submitted {
		return ErrSubmitted
	}
	return nil
}

// submitIndex is the last non-terminal step.
func (w *Wizard[T]) submitIndex() int {
	for i := len(w.def.Steps) - 1; i >= 0; i-- {
		if !w.def.Steps[i].Terminal {
			return i
		}
	}
	return -1
}

func (w *Wizard[T]) known(field string) bool {
	for _, s := range w.def.Steps {
		if slices.Contains(s.Fields, field) {
			return true
		}
	}
	return false
}

// validateCurrent replaces the current step's field errors with a fresh
// validation result and reports whether the step is clean.
func (w *Wizard[T]) validateCurrent() bool {
	step := w.def.Steps[w.index]
	for _, f := range step.Fields {
		delete(w.errors, f)
	}
	delete(w.errors, SubmitField)

	if step.Validate == nil {
		return true
	}
	errs := step.Validate(w.values)
	maps.Copy(w.errors, errs)
	return len(errs) == 0
}

func submitMessage(err error) string {
	var we *storage.WriteError
	if errors.As(err, &we) && we.Message != "" {
		return we.Message
	}
	if errors.Is(err, storage.ErrNotFound) {
		return "The selected course is no longer available"
	}
	return defaultSubmitMessage
}

// Flow is the type-erased view of a wizard used by the HTTP layer.
type Flow interface {
	Name() string
	State() State
	Set(field, value string) error
	Next() error
	Back() error
	Submit() (any, error)
}

type flow[T any] struct {
	*Wizard[T]
}

func (f flow[T]) Submit() (any, error) {
	result, err := f.Wizard.Submit()
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Flow returns w as a Flow.
func (w *Wizard[T]) Flow() Flow {
	return flow[T]{w}
}
