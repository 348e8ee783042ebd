package pid

// Controller combines proportional, integral and derivative terms of the
// setpoint error into a single control output. Calls must be strictly
// sequential; each simulation run owns its controller exclusively.
type Controller struct {
	gains    Gains
	setpoint float64
	set      bool

	integ *Integrator
	deriv *Differentiator
	clock Clock
}

type Option func(*Controller)

func WithSetpoint(x float64) Option {
	return func(c *Controller) {
		c.setpoint = x
		c.set = true
	}
}

// WithClock replaces the monotonic wall-clock time source.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

func New(p, i, d float64, opts ...Option) (*Controller, error) {
	gains, err := NewGains(p, i, d)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		gains: gains,
		integ: NewIntegrator(0, Midpoint{}),
		deriv: NewDifferentiator(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = NewMonotonicClock()
	}
	return c, nil
}

// Output computes the control output for one measurement, advancing both
// accumulators by exactly one sample. The second return value is the
// current setpoint error. Fails with ErrSetpointUnset until a setpoint
// has been configured.
func (c *Controller) Output(measured float64) (float64, float64, error) {
	if !c.set {
		return 0, 0, ErrSetpointUnset
	}

	t := c.clock.Now()
	e := c.setpoint - measured

	out := c.gains.P*e +
		c.gains.I*c.integ.Compute(e, t) +
		c.gains.D*c.deriv.Compute(e, t)

	return out, e, nil
}

// SetGains replaces the full gain triple. The replacement is all or
// nothing: on a validation failure the previous gains stay in effect.
func (c *Controller) SetGains(p, i, d float64) error {
	gains, err := NewGains(p, i, d)
	if err != nil {
		return err
	}
	c.gains = gains
	return nil
}

func (c *Controller) Gains() Gains { return c.gains }

// SetSetpoint sets or replaces the target value.
func (c *Controller) SetSetpoint(x float64) {
	c.setpoint = x
	c.set = true
}

// Setpoint reports the target and whether one has been configured.
func (c *Controller) Setpoint() (float64, bool) {
	return c.setpoint, c.set
}
