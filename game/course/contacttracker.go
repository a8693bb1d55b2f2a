package course

import (
	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils"
)

// A robot is Airborne while NumLandContacts == 0 and Grounded otherwise.
// Counter and memory updates happen right away (they stay inside the Robot);
// achievements go through the mutation queue.

func (robot *Robot) handleBeginContact(contact box2d.B2ContactInterface) {
	part, target, ok := robot.resolveContact(contact.GetFixtureA(), contact.GetFixtureB())
	if !ok {
		return
	}
	robot.beginContact(part, target)
}

func (robot *Robot) handleEndContact(contact box2d.B2ContactInterface) {
	part, target, ok := robot.resolveContact(contact.GetFixtureA(), contact.GetFixtureB())
	if !ok {
		return
	}
	robot.endContact(part, target)
}

// resolveContact picks which side of a contact belongs to this robot.
func (robot *Robot) resolveContact(fixtureA, fixtureB *box2d.B2Fixture) (types.Part, types.BodyTag, bool) {
	tagA, okA := types.TagOf(fixtureA)
	tagB, okB := types.TagOf(fixtureB)

	switch {
	case okA && tagA.IsRobot() && tagA.RobotID == robot.ID:
		return tagA.Part, tagB, okB
	case okB && tagB.IsRobot() && tagB.RobotID == robot.ID:
		return tagB.Part, tagA, okA
	}

	return "", types.BodyTag{}, false
}

func (robot *Robot) beginContact(part types.Part, target types.BodyTag) {
	if !target.IsFloor() {
		return
	}

	switch part {
	case types.RobotPart.Wheel: // landed
		robot.NumLandContacts++
	case types.RobotPart.Body: // fall
		c := robot.CenterOfMass()
		robot.course.mutations.Enqueue(func() {
			robot.Achievements.Falls = append(robot.Achievements.Falls, FallEvent{Position: c})
		})
	}

	// any floor contact ends the current flight
	robot.Memory.Peak = nil
}

func (robot *Robot) endContact(part types.Part, target types.BodyTag) {
	if !target.IsFloor() || part != types.RobotPart.Wheel {
		return
	}

	utils.Assert(robot.NumLandContacts > 0, "robot "+robot.ID+": wheel left the floor more often than it touched it")

	robot.NumLandContacts--
	if robot.NumLandContacts == 0 { // takeoff
		robot.Memory.Takeoff = &TakeoffMemory{
			Position: robot.CenterOfMass(),
			Time:     robot.course.Time(),
		}
	}
}

// observeFlight keeps the apex of the current flight; called after each step.
func (robot *Robot) observeFlight() {
	if robot.NumLandContacts > 0 || robot.Memory.Takeoff == nil {
		return
	}

	c := robot.CenterOfMass()
	if robot.Memory.Peak == nil || c.Y > robot.Memory.Peak.Y {
		robot.Memory.Peak = &c
	}
}
