package pid

import "errors"

// Domain errors for controller construction and use.
var (
	// ErrGainOutOfRange indicates a gain coefficient outside [0, 100].
	ErrGainOutOfRange = errors.New("pid: gain out of range [0, 100]")

	// ErrSetpointUnset indicates Output was called before a setpoint
	// was configured.
	ErrSetpointUnset = errors.New("pid: setpoint not set")
)
