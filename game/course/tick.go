package course

import (
	"github.com/bytearena/pendulum/common/utils/vector"
)

type JointReport struct {
	Angle           float64 `json:"angle"`
	AngularVelocity float64 `json:"angularVelocity"`
	RequestedTorque float64 `json:"requestedTorque"`
	Torque          float64 `json:"torque"`
}

// TickReport is the robot state observed before the step, along with the
// allocation computed for the command.
type TickReport struct {
	Tick             uint64                 `json:"tick"`
	Time             float64                `json:"t"`
	Body             BodyState              `json:"body"`
	Wheel            BodyState              `json:"wheel"`
	Joints           [NumJoints]JointReport `json:"joints"`
	CenterOfMass     vector.Vector2         `json:"c"`
	NumLandContacts  int                    `json:"numLandContacts"`
	Power            float64                `json:"power"`
	SaturationFactor float64                `json:"saturationFactor"`
}

// Control runs one tick driven by the given robot. The allocation is always
// computed and reported; it is applied to the robot only when commit is set.
// On error nothing is mutated and no step is taken.
func (course *Course) Control(id string, u Command, commit bool, info string) (TickReport, error) {
	robot, err := course.Robot(id)
	if err != nil {
		return TickReport{}, err
	}

	if err := u.Validate(); err != nil {
		return TickReport{}, err
	}

	state := robot.kinematicState()
	allocation := Allocate(state, u, robot.limits())

	report := TickReport{
		Tick:             course.tick,
		Time:             course.t,
		Body:             state.Body,
		Wheel:            state.Wheel,
		CenterOfMass:     robot.CenterOfMass(),
		NumLandContacts:  robot.NumLandContacts,
		Power:            allocation.Power,
		SaturationFactor: allocation.SaturationFactor,
	}

	for i, joint := range robot.Joints {
		report.Joints[i] = JointReport{
			Angle:           joint.GetJointAngle(),
			AngularVelocity: joint.GetJointSpeed(),
			RequestedTorque: allocation.RequestedTorques[i],
			Torque:          allocation.Torques[i],
		}
	}

	robot.Torque = allocation.Torques
	robot.Power = allocation.Power

	if commit {
		robot.commit(state, allocation)
	}

	robot.Info = info

	course.Step()

	return report, nil
}

// Step advances the world by one fixed time step. Contact notifications fire
// during the physics step; the mutations they queued run right after it,
// before the clock moves.
func (course *Course) Step() {
	course.world.Step(
		course.config.TimeStep,
		course.config.VelocityIterations,
		course.config.PositionIterations,
	)

	for _, robot := range course.Robots() {
		robot.observeFlight()
	}

	course.mutations.Flush()

	course.t += course.config.TimeStep
	course.tick++
}
