// Package pid implements a PID feedback controller driven by irregular
// wall-clock timestamps rather than a fixed tick.
//
// The controller owns two accumulators: an [Integrator] running a
// trapezoid-rule sum of the error signal and a [Differentiator] holding
// a two-point secant slope estimate. Both tolerate jittered time steps;
// neither clamps or saturates.
//
//	ctrl, err := pid.New(10, 100, 0.1, pid.WithSetpoint(1.0))
//	out, errVal, err := ctrl.Output(measured)
//
// Time is read from an injectable [Clock] so tests and replays can use
// deterministic timestamps.
package pid
