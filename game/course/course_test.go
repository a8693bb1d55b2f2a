package course

import (
	"math"
	"os"
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/utils"
	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.SetQuiet(true)
	os.Exit(m.Run())
}

// flatStage is a 100m floor at y = 0 centered on the origin.
func flatStage(course *Course, sf *StageFactory) {
	sf.Move(-50, 0)
	sf.BeginFloor()
	sf.AddFloor(100, 0)
	sf.EndFloor()
}

func newTestCourse(t *testing.T, stage StageBuilder) *Course {
	t.Helper()

	course, err := NewCourse(DefaultConfig(), stage)
	require.NoError(t, err)

	return course
}

func spawnTestRobot(t *testing.T, course *Course, p vector.Vector2) *Robot {
	t.Helper()

	id, err := course.SpawnRobot(p, RobotParamsOverrides{})
	require.NoError(t, err)

	robot, err := course.Robot(id)
	require.NoError(t, err)

	return robot
}

// driveRobot moves every part of the robot horizontally at vx, keeping it
// upright, until done returns true.
func driveRobot(t *testing.T, course *Course, robot *Robot, vx float64, done func() bool) {
	t.Helper()

	for i := 0; i < 1000; i++ {
		if done() {
			return
		}

		for _, part := range robot.parts() {
			part.SetLinearVelocity(box2d.MakeB2Vec2(vx, part.GetLinearVelocity().Y))
			part.SetAngularVelocity(0)
		}
		course.Step()
	}

	t.Fatal("robot did not reach its destination")
}

func TestSpawnRobotGeometry(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 2))

	assert.InDelta(t, 0, robot.Body.GetPosition().X, 1e-9)
	assert.InDelta(t, 2, robot.Body.GetPosition().Y, 1e-9)
	assert.InDelta(t, -0.15, robot.Wheel.GetPosition().X, 1e-9)
	assert.InDelta(t, 0.4, robot.Wheel.GetPosition().Y, 1e-9)

	assert.Equal(t, 0, robot.NumLandContacts)
	assert.Equal(t, 1.0, robot.SaturationFactor)
	assert.Empty(t, robot.Achievements.Falls)
	assert.Empty(t, robot.Achievements.Log)
	assert.Same(t, robot, course.LatestRobot())
}

func TestSpawnRobotRejectsInvalidInput(t *testing.T) {
	course := newTestCourse(t, flatStage)

	_, err := course.SpawnRobot(vector.MakeVector2(math.NaN(), 0), RobotParamsOverrides{})
	assert.True(t, IsInvalidParameter(err))

	negative := -1.0
	_, err = course.SpawnRobot(vector.MakeVector2(0, 2), RobotParamsOverrides{MaxTorque: &negative})
	assert.True(t, IsInvalidParameter(err))

	assert.Empty(t, course.Robots())
}

func TestResetInvalidatesRobots(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 2))

	course.Step()
	require.Equal(t, uint64(1), course.Tick())

	course.Reset()

	_, err := course.Robot(robot.ID)
	assert.True(t, IsUnknownRobot(err))
	assert.Equal(t, uint64(0), course.Tick())
	assert.Equal(t, 0.0, course.Time())
	assert.Nil(t, course.LatestRobot())
	assert.Len(t, course.Floors(), 1)
}

func TestControlUnknownRobot(t *testing.T) {
	course := newTestCourse(t, flatStage)

	_, err := course.Control("nope", MakeCommand(0, 0, 0), true, "")
	assert.True(t, IsUnknownRobot(err))
	assert.Equal(t, uint64(0), course.Tick())
}

func TestControlInvalidCommandDoesNotStep(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 2))

	_, err := course.Control(robot.ID, MakeCommand(math.Inf(1), 0, 0), true, "")
	assert.True(t, IsInvalidParameter(err))
	assert.Equal(t, uint64(0), course.Tick())
	assert.True(t, robot.Joints[JointHip].IsMotorEnabled())
}

func TestControlFreeFall(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 2))

	wheelY := robot.Wheel.GetPosition().Y

	report, err := course.Control(robot.ID, MakeCommand(0, 0, 0), true, "hello")
	require.NoError(t, err)

	assert.Equal(t, uint64(0), report.Tick)
	assert.Equal(t, 1.0, report.SaturationFactor)
	assert.Equal(t, 0, report.NumLandContacts)
	assert.InDelta(t, 0.4, report.Wheel.Position.Y, 1e-9)

	assert.Less(t, robot.Wheel.GetPosition().Y, wheelY)
	assert.Equal(t, 0, robot.NumLandContacts)
	assert.Equal(t, "hello", robot.Info)
	assert.InDelta(t, DefaultConfig().TimeStep, course.Time(), 1e-12)
	assert.Equal(t, uint64(1), course.Tick())

	for _, joint := range robot.Joints {
		assert.False(t, joint.IsMotorEnabled())
	}
}

func TestControlWithoutCommitKeepsMotors(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 2))

	report, err := course.Control(robot.ID, MakeCommand(0, 0, 250), false, "")
	require.NoError(t, err)

	assert.InDelta(t, 2.5, report.SaturationFactor, 1e-9)
	assert.InDelta(t, 100, robot.Torque[JointHip], 1e-9)
	// the robot only reports a saturation it actually applied
	assert.Equal(t, 1.0, robot.SaturationFactor)
	assert.True(t, robot.Joints[JointHip].IsMotorEnabled())
}

func TestWheelLandsOnFloor(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 2))

	for i := 0; i < 30; i++ {
		course.Step()
	}

	assert.Greater(t, robot.NumLandContacts, 0)
	assert.Equal(t, 0, course.PendingMutations())
}

func TestRobotsInSpawnOrder(t *testing.T) {
	course := newTestCourse(t, flatStage)
	first := spawnTestRobot(t, course, vector.MakeVector2(-5, 2))
	second := spawnTestRobot(t, course, vector.MakeVector2(5, 2))

	robots := course.Robots()
	require.Len(t, robots, 2)
	assert.Equal(t, first.ID, robots[0].ID)
	assert.Equal(t, second.ID, robots[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Same(t, second, course.LatestRobot())
}

func TestControlSaturatesOnTheFloor(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 2))

	settled := 0
	driveRobot(t, course, robot, 0, func() bool {
		if robot.NumLandContacts > 0 {
			settled++
		}
		return settled > 30
	})
	require.Equal(t, 1, robot.NumLandContacts)

	report, err := course.Control(robot.ID, MakeCommand(1e6, 0, 0), true, "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.NumLandContacts)
	assert.Greater(t, report.SaturationFactor, 1.0)
	assert.Equal(t, report.SaturationFactor, robot.SaturationFactor)
	assert.LessOrEqual(t, report.Power, robot.Params.MaxPower+1e-9)

	for i, joint := range report.Joints {
		assert.LessOrEqual(t, math.Abs(joint.Torque), robot.Params.MaxTorque+1e-9, "joint %d", i)
		assert.InDelta(t, joint.RequestedTorque/report.SaturationFactor, joint.Torque, 1e-9)
	}
}
