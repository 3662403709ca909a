package exam

import (
	"errors"
	"fmt"
)

var (
	// ErrFormStepFailed matches every FormStepError.
	ErrFormStepFailed = errors.New("form step failed")

	// ErrControlNotFound means a required form control never resolved.
	ErrControlNotFound = errors.New("form control not found")

	// ErrInvalidDate is returned for calendar cells that do not form a real date.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrSessionStart wraps browser start-up failures.
	ErrSessionStart = errors.New("failed to start browser session")

	// ErrCyclePanic wraps a panic recovered at the cycle boundary.
	ErrCyclePanic = errors.New("check cycle panicked")
)

// Navigation step names reported in FormStepError.
const (
	StepLogin    = "login"
	StepNavigate = "navigate"
	StepCountry  = "country"
	StepLocation = "location"
	StepTestType = "test_type"
)

// FormStepError identifies the navigation step that aborted a cycle.
type FormStepError struct {
	Step string
	Err  error
}

func (e *FormStepError) Error() string {
	return fmt.Sprintf("form step %q failed: %v", e.Step, e.Err)
}

func (e *FormStepError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFormStepFailed) true for any step.
func (e *FormStepError) Is(target error) bool {
	return target == ErrFormStepFailed
}

func stepError(step string, err error) error {
	return &FormStepError{Step: step, Err: err}
}
