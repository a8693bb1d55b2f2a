package course

import (
	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils/vector"
)

// CheckpointCallback runs from the mutation queue, after the step that
// detected the crossing, so it may create or destroy bodies freely.
type CheckpointCallback func(robot *Robot)

// Checkpoint is a one-shot sensor: the first robot touching it triggers the
// callback, every later contact is ignored.
type Checkpoint struct {
	body     *box2d.B2Body
	sensor   *box2d.B2Fixture
	armed    bool
	from, to vector.Vector2 // extent shown in viz frames
	callback CheckpointCallback
	course   *Course
}

func (course *Course) newCheckpoint(shape box2d.B2ShapeInterface, from, to vector.Vector2, callback CheckpointCallback) *Checkpoint {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_staticBody

	body := course.world.CreateBody(&bodydef)
	body.SetUserData(types.MakeSensorTag())

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = shape
	fixturedef.IsSensor = true

	checkpoint := &Checkpoint{
		body:     body,
		sensor:   body.CreateFixtureFromDef(&fixturedef),
		armed:    true,
		from:     from,
		to:       to,
		callback: callback,
		course:   course,
	}

	course.collisions.onBeginContact(checkpoint.handleBeginContact)
	course.checkpoints = append(course.checkpoints, checkpoint)

	return checkpoint
}

func (checkpoint *Checkpoint) IsArmed() bool {
	return checkpoint.armed
}

func (checkpoint *Checkpoint) handleBeginContact(contact box2d.B2ContactInterface) {
	checkpoint.trigger(contact.GetFixtureA(), contact.GetFixtureB())
}

// trigger disarms the checkpoint and enqueues its callback when a robot
// touches the sensor. It reports whether the callback was enqueued.
func (checkpoint *Checkpoint) trigger(fixtureA, fixtureB *box2d.B2Fixture) bool {
	other := otherFixture(checkpoint.sensor, fixtureA, fixtureB)
	if other == nil || !checkpoint.armed {
		return false
	}

	tag, ok := types.TagOf(other)
	if !ok || !tag.IsRobot() {
		return false
	}

	robot, found := checkpoint.course.robots[tag.RobotID]
	if !found {
		return false
	}

	// disarm before enqueueing: several contact points of the same step must
	// not fire twice
	checkpoint.armed = false
	checkpoint.course.mutations.Enqueue(func() {
		checkpoint.callback(robot)
	})

	return true
}

func (checkpoint *Checkpoint) viz() types.VizCheckpoint {
	return types.VizCheckpoint{
		From:  checkpoint.from,
		To:    checkpoint.to,
		Armed: checkpoint.armed,
	}
}
