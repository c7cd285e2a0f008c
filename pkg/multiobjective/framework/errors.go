package framework

import "fmt"

// ConfigurationError reports an invalid strategy parameter. It is surfaced by
// constructors before any generation runs.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Param, e.Reason)
}

// Configf builds a ConfigurationError for the given parameter.
func Configf(param, format string, args ...any) error {
	return &ConfigurationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// ObjectiveAccessError reports a request for an objective value an individual
// does not carry. It is propagated rather than substituted with zero; see
// ScaleOptions.MissingAsZero for the documented opt-in degradation.
type ObjectiveAccessError struct {
	Index int
	Len   int
}

func (e *ObjectiveAccessError) Error() string {
	return fmt.Sprintf("objective %d not accessible on fitness vector of length %d", e.Index, e.Len)
}

// DegenerateInputError reports fewer individuals than an operation's arity
// assumption. Fatal, not recoverable within the strategy.
type DegenerateInputError struct {
	Op   string
	Want int
	Got  int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: needs at least %d individuals, got %d", e.Op, e.Want, e.Got)
}
