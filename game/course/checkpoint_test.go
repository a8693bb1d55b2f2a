package course

import (
	"strconv"
	"strings"
	"testing"

	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointFiresOnce(t *testing.T) {
	course := newTestCourse(t, flatStage)
	robot := spawnTestRobot(t, course, vector.MakeVector2(0, 5))

	fired := make([]*Robot, 0)
	checkpoint := newStageFactory(course).MakeGateAt(20, func(robot *Robot) {
		fired = append(fired, robot)
	})

	// every part of the robot crossing in the same step
	for _, part := range robot.parts() {
		checkpoint.trigger(checkpoint.sensor, part.GetFixtureList())
	}

	assert.False(t, checkpoint.IsArmed())
	assert.Empty(t, fired)
	assert.Equal(t, 1, course.PendingMutations())

	course.mutations.Flush()
	require.Len(t, fired, 1)
	assert.Same(t, robot, fired[0])

	assert.False(t, checkpoint.trigger(robot.Body.GetFixtureList(), checkpoint.sensor))
	assert.Equal(t, 0, course.PendingMutations())
}

func TestCheckpointIgnoresNonRobots(t *testing.T) {
	course := newTestCourse(t, flatStage)

	checkpoint := newStageFactory(course).MakeGateAt(20, func(robot *Robot) {
		t.Fatal("callback must not run")
	})

	_, floor := course.createFloorBlock(box2d.B2BodyType.B2_staticBody, vector.MakeVector2(20, -5), 1, 1)
	assert.False(t, checkpoint.trigger(checkpoint.sensor, floor))

	// a fixture that is not the sensor of this checkpoint
	other := newStageFactory(course).MakeGateAt(30, func(robot *Robot) {})
	assert.False(t, checkpoint.trigger(other.sensor, floor))

	assert.True(t, checkpoint.IsArmed())
	assert.Equal(t, 0, course.PendingMutations())
}

func TestCheckpointCallbackMayDestroyBodies(t *testing.T) {
	var block *box2d.B2Body

	course := newTestCourse(t, func(course *Course, sf *StageFactory) {
		flatStage(course, sf)

		block, _ = course.createFloorBlock(box2d.B2BodyType.B2_dynamicBody, vector.MakeVector2(10, 3), 0.1, 0.1)
		sf.MakeGateAt(0, func(robot *Robot) {
			course.world.DestroyBody(block)
			block = nil
		})
	})

	bodies := course.world.GetBodyCount()
	// straddles the gate line
	spawnTestRobot(t, course, vector.MakeVector2(0.1, 2))

	course.Step()

	assert.Nil(t, block)
	assert.Equal(t, bodies+4-1, course.world.GetBodyCount())
}

func TestSprintGoalLogsOnce(t *testing.T) {
	course := newTestCourse(t, PopulateCourse)

	// the sprint goal line is at x = 35
	robot := spawnTestRobot(t, course, vector.MakeVector2(35.1, 2))

	for i := 0; i < 10; i++ {
		course.Step()
	}

	require.Len(t, robot.Achievements.Log, 1)
	assert.True(t, strings.HasPrefix(robot.Achievements.Log[0], "10m sprint: "))
}

func TestSprintTimedFromStartGate(t *testing.T) {
	course := newTestCourse(t, PopulateCourse)

	// start gate at x = 25, goal at x = 35
	robot := spawnTestRobot(t, course, vector.MakeVector2(22, 2))
	x := func() float64 { return robot.Body.GetPosition().X }

	driveRobot(t, course, robot, 6, func() bool { return x() > 37 })

	require.Len(t, robot.Achievements.Log, 1)
	entry := robot.Achievements.Log[0]
	require.True(t, strings.HasPrefix(entry, "10m sprint: "), entry)

	elapsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimPrefix(entry, "10m sprint: "), "s"), 64)
	require.NoError(t, err)
	assert.InDelta(t, 10.0/6, elapsed, 0.25)
	assert.Less(t, elapsed, course.Time()-0.25)

	// back behind the goal and across it again
	driveRobot(t, course, robot, -6, func() bool { return x() < 33 })
	driveRobot(t, course, robot, 6, func() bool { return x() > 37 })

	assert.Equal(t, []string{entry}, robot.Achievements.Log)
}

func TestElevatorCoalescesCommands(t *testing.T) {
	course := newTestCourse(t, flatStage)

	body, fixture := course.createFloorBlock(box2d.B2BodyType.B2_kinematicBody, vector.MakeVector2(0, -3), 2, 0.05)
	elevator := course.newElevator(body, fixture, 1)

	elevator.command(1)
	elevator.command(2)
	assert.Equal(t, 1, course.PendingMutations())
	assert.True(t, elevator.Velocity().IsNull())

	course.mutations.Flush()
	assert.Equal(t, vector.MakeVector2(0, 2), elevator.Velocity())

	elevator.command(3)
	assert.Equal(t, 1, course.PendingMutations())
}

func TestPopulateCourse(t *testing.T) {
	course := newTestCourse(t, PopulateCourse)

	// the conveyor splits the floor in two
	assert.Len(t, course.Floors(), 2)
	assert.NotEmpty(t, course.Labels())

	for _, checkpoint := range course.Checkpoints() {
		assert.True(t, checkpoint.IsArmed())
	}
	// sprint start and goal, long jump, high jump, obstacle start, block
	// pile, timed gate, finish
	assert.Len(t, course.Checkpoints(), 8)
}
