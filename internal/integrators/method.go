package integrators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/qwave/internal/quantum"
)

// Stepper advances a quantum state by one time step in place. A stepper
// always finishes by normalizing, and leaves st.Psi untouched when it
// returns an error.
type Stepper interface {
	Step(st *quantum.State) error
}

// Method selects one of the stepping schemes.
type Method int

const (
	ReImLeapfrog Method = iota
	ForwardEuler
	GroundStateRelaxation
	GroundStateKrylov
)

// ErrUnknownMethod indicates a method name that is not in the table.
var ErrUnknownMethod = errors.New("integrators: unknown method")

// UnknownMethodError reports the rejected method name.
type UnknownMethodError struct {
	Name string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("%v: %q (available: %s)", ErrUnknownMethod, e.Name, strings.Join(Names(), ", "))
}

func (e *UnknownMethodError) Unwrap() error {
	return ErrUnknownMethod
}

var methods = [...]struct {
	name  string
	label string
	new   func() Stepper
}{
	ReImLeapfrog:          {"re_im_leapfrog", "ReImLeapfrog", func() Stepper { return NewLeapfrog() }},
	ForwardEuler:          {"forward_euler", "ForwardEuler", func() Stepper { return NewEuler() }},
	GroundStateRelaxation: {"find_ground_state", "GroundStateRelaxation", func() Stepper { return NewRelaxation() }},
	GroundStateKrylov:     {"find_ground_state_arnoldi", "GroundStateKrylov", func() Stepper { return NewKrylov() }},
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methods) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methods[m].name
}

// Valid reports whether m is one of the enumerated methods.
func (m Method) Valid() bool {
	return m >= 0 && int(m) < len(methods)
}

// ParseMethod resolves a settings-file name ("re_im_leapfrog") or a
// CamelCase label ("ReImLeapfrog").
func ParseMethod(name string) (Method, error) {
	for i, m := range methods {
		if name == m.name || name == m.label {
			return Method(i), nil
		}
	}
	return 0, &UnknownMethodError{Name: name}
}

// New returns a fresh stepper for m.
func New(m Method) (Stepper, error) {
	if !m.Valid() {
		return nil, &UnknownMethodError{Name: m.String()}
	}
	return methods[m].new(), nil
}

// Names lists the method names in enumeration order.
func Names() []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.name
	}
	return names
}

// All lists the methods in enumeration order.
func All() []Method {
	all := make([]Method, len(methods))
	for i := range methods {
		all[i] = Method(i)
	}
	return all
}
