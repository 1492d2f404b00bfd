// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package pid implements a discrete single-axis PID controller with a fixed
// control period and an anti-windup clamp on the integral accumulator.
package pid

const (
	PERIOD = float32(0.02) // Control loop period, in time units.
)

// Controller is the state of one PID loop.
type Controller struct {
	P        float32 // Proportional gain.
	I        float32 // Integral gain.
	D        float32 // Derivative gain.
	Setpoint float32 // Target measurement.

	prevError  float32
	totalError float32
}

// New creates a controller with the given gains and a zero setpoint.
func New(p, i, d float32) *Controller {
	return &Controller{
		P: p,
		I: i,
		D: d,
	}
}

// Reset clears the accumulated error history. Gains and setpoint are kept.
func (pc *Controller) Reset() {
	pc.prevError = 0
	pc.totalError = 0
}

// PrevError returns the error seen by the previous step.
func (pc *Controller) PrevError() float32 {
	return pc.prevError
}

// TotalError returns the clamped integral accumulator.
func (pc *Controller) TotalError() float32 {
	return pc.totalError
}

// Step advances the loop by one period and returns the control output.
//
// The integral accumulator is clamped to [-1/I, 1/I], so the integral
// term never exceeds unity. With I == 0 the accumulator is left untouched.
func (pc *Controller) Step(measurement float32) (output float32) {
	err := pc.Setpoint - measurement
	derivative := (err - pc.prevError) / PERIOD
	pc.prevError = err

	if pc.I != 0 {
		limit := 1 / pc.I
		total := pc.totalError + float32(err*PERIOD)
		switch {
		case total < -limit:
			total = -limit
		case total > limit:
			total = limit
		}
		pc.totalError = total
	}

	// Explicit conversions keep each product rounded to float32 and
	// prevent fused multiply-add.
	output = float32(pc.P*err) + float32(pc.I*pc.totalError) + float32(pc.D*derivative)

	return
}
