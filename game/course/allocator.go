package course

import (
	"math"

	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/pkg/errors"
)

// Command is the external actuation request: a planar force on the body
// center and a torque term.
type Command struct {
	Force  vector.Vector2
	Torque float64
}

func MakeCommand(fx, fy, m float64) Command {
	return Command{
		Force:  vector.MakeVector2(fx, fy),
		Torque: m,
	}
}

func (u Command) Validate() error {
	if !u.Force.IsFinite() || math.IsNaN(u.Torque) || math.IsInf(u.Torque, 0) {
		return errors.Wrapf(ErrInvalidParameter, "command components must be finite numbers (got %g, %g, %g)", u.Force.X, u.Force.Y, u.Torque)
	}
	return nil
}

func (u Command) DivScalar(s float64) Command {
	return Command{
		Force:  u.Force.DivScalar(s),
		Torque: u.Torque / s,
	}
}

type BodyState struct {
	Position        vector.Vector2 `json:"position"`
	Angle           float64        `json:"angle"`
	Velocity        vector.Vector2 `json:"velocity"`
	AngularVelocity float64        `json:"angularVelocity"`
}

// KinematicState is everything the allocator reads from the registry.
type KinematicState struct {
	Body    BodyState
	Wheel   BodyState
	Anchors [NumJoints]vector.Vector2
}

type Limits struct {
	MaxTorque float64
	MaxPower  float64
}

type Allocation struct {
	RequestedTorques [NumJoints]float64
	Torques          [NumJoints]float64
	RequestedPower   float64
	Power            float64
	SaturationFactor float64
	Command          Command // realized command, u / SaturationFactor
}

// reactionTorque is the torque applied to the wheel so that body and wheel
// act as an internal actuator pair.
func reactionTorque(state KinematicState, u Command) float64 {
	offset := state.Body.Position.Sub(state.Wheel.Position)
	return -u.Torque - offset.X*u.Force.Y + offset.Y*u.Torque
}

func requestedPower(state KinematicState, u Command) float64 {
	power := u.Force.Dot(state.Body.Velocity)
	power += u.Torque * state.Body.AngularVelocity
	power -= u.Force.Dot(state.Wheel.Velocity)
	power += reactionTorque(state, u) * state.Wheel.AngularVelocity
	return power
}

// Allocate converts a command into admissible actuator outputs. A single
// saturation factor s >= 1 divides every channel, so the realized command
// keeps the direction and ratios of the request. It has no side effects.
func Allocate(state KinematicState, u Command, limits Limits) Allocation {
	allocation := Allocation{}

	maxRequestedTorque := 0.0
	for i, anchor := range state.Anchors {
		torque := u.Torque + state.Body.Position.Sub(anchor).Cross(u.Force)
		allocation.RequestedTorques[i] = torque
		maxRequestedTorque = math.Max(math.Abs(torque), maxRequestedTorque)
	}

	allocation.RequestedPower = requestedPower(state, u)

	s := 1.0
	s = math.Max(maxRequestedTorque/limits.MaxTorque, s)
	s = math.Max(allocation.RequestedPower/limits.MaxPower, s)

	utils.Assert(!math.IsNaN(s) && !math.IsInf(s, 0), "saturation factor is not finite")

	for i, torque := range allocation.RequestedTorques {
		allocation.Torques[i] = torque / s
	}
	allocation.Power = allocation.RequestedPower / s
	allocation.SaturationFactor = s
	allocation.Command = u.DivScalar(s)

	return allocation
}
