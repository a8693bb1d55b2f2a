package course

import (
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var floorTag = types.MakeFloorTag()

func TestLandContactsBalance(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))

	for i := 0; i < 3; i++ {
		robot.beginContact(types.RobotPart.Wheel, floorTag)
	}
	assert.Equal(t, 3, robot.NumLandContacts)

	for i := 0; i < 2; i++ {
		robot.endContact(types.RobotPart.Wheel, floorTag)
	}
	assert.Equal(t, 1, robot.NumLandContacts)
	assert.Nil(t, robot.Memory.Takeoff)

	robot.endContact(types.RobotPart.Wheel, floorTag)
	assert.Equal(t, 0, robot.NumLandContacts)
	require.NotNil(t, robot.Memory.Takeoff)
	assert.Equal(t, robot.CenterOfMass(), robot.Memory.Takeoff.Position)
	assert.Equal(t, course.Time(), robot.Memory.Takeoff.Time)
}

func TestLandContactsNeverNegative(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))

	assert.Panics(t, func() {
		robot.endContact(types.RobotPart.Wheel, floorTag)
	})
}

func TestOnlyWheelFloorContactsCount(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))

	robot.beginContact(types.RobotPart.Wheel, types.MakeSensorTag())
	robot.beginContact(types.RobotPart.LowerLeg, floorTag)
	robot.endContact(types.RobotPart.Body, floorTag)

	assert.Equal(t, 0, robot.NumLandContacts)
	assert.Equal(t, 0, course.PendingMutations())
}

func TestFallsAreDeferred(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))

	c := robot.CenterOfMass()
	for i := 0; i < 3; i++ {
		robot.beginContact(types.RobotPart.Body, floorTag)
	}

	assert.Empty(t, robot.Achievements.Falls)
	assert.Equal(t, 3, course.PendingMutations())

	course.mutations.Flush()

	require.Len(t, robot.Achievements.Falls, 3)
	for _, fall := range robot.Achievements.Falls {
		assert.Equal(t, c, fall.Position)
	}
	assert.Equal(t, 0, robot.NumLandContacts)
}

func TestFloorContactClearsPeak(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))

	peak := vector.MakeVector2(1, 2)
	robot.Memory.Peak = &peak
	robot.beginContact(types.RobotPart.Wheel, floorTag)
	assert.Nil(t, robot.Memory.Peak)

	robot.Memory.Peak = &peak
	robot.beginContact(types.RobotPart.Body, floorTag)
	assert.Nil(t, robot.Memory.Peak)
}

func TestObserveFlightKeepsApex(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))

	// no takeoff yet
	robot.observeFlight()
	assert.Nil(t, robot.Memory.Peak)

	robot.Memory.Takeoff = &TakeoffMemory{Position: robot.CenterOfMass()}
	robot.observeFlight()
	require.NotNil(t, robot.Memory.Peak)
	apex := *robot.Memory.Peak

	// falling from the spawn point never raises the apex
	for i := 0; i < 10; i++ {
		course.Step()
	}
	require.NotNil(t, robot.Memory.Peak)
	assert.Equal(t, apex, *robot.Memory.Peak)
}

func TestResolveContact(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))
	other := spawnTestRobot(t, course, vector.MakeVector2(10, 5))

	_, floor := course.createFloorBlock(box2d.B2BodyType.B2_staticBody, vector.MakeVector2(0, -10), 1, 1)
	wheel := robot.Wheel.GetFixtureList()

	part, target, ok := robot.resolveContact(wheel, floor)
	assert.True(t, ok)
	assert.Equal(t, types.RobotPart.Wheel, part)
	assert.True(t, target.IsFloor())

	part, target, ok = robot.resolveContact(floor, wheel)
	assert.True(t, ok)
	assert.Equal(t, types.RobotPart.Wheel, part)
	assert.True(t, target.IsFloor())

	_, _, ok = robot.resolveContact(other.Wheel.GetFixtureList(), floor)
	assert.False(t, ok)

	part, target, ok = robot.resolveContact(robot.Body.GetFixtureList(), other.Body.GetFixtureList())
	assert.True(t, ok)
	assert.Equal(t, types.RobotPart.Body, part)
	assert.Equal(t, other.ID, target.RobotID)
}
