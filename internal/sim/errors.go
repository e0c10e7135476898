package sim

import (
	"fmt"

	"github.com/san-kum/qwave/internal/integrators"
)

// StepError wraps an integrator failure with the step it happened on.
type StepError struct {
	Step    int
	Method  integrators.Method
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Method, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
