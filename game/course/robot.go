package course

import (
	"math"

	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils/vector"
)

const (
	JointHip = iota
	JointKnee
	JointAxle

	NumJoints
)

// default friction of a Box2D fixture, used for the legs
const legFriction = 0.2

type FallEvent struct {
	Position vector.Vector2 `json:"p"`
}

// Achievements only grow; entries are appended from the mutation queue.
type Achievements struct {
	Falls []FallEvent `json:"fall"`
	Log   []string    `json:"log"`
}

type TakeoffMemory struct {
	Position vector.Vector2 `json:"p"`
	Time     float64        `json:"t"`
}

type Memory struct {
	Takeoff *TakeoffMemory  `json:"takeoff"`
	Peak    *vector.Vector2 `json:"peak"`
}

type Robot struct {
	ID     string
	Params RobotParams

	Body     *box2d.B2Body
	UpperLeg *box2d.B2Body
	LowerLeg *box2d.B2Body
	Wheel    *box2d.B2Body
	Joints   [NumJoints]*box2d.B2RevoluteJoint

	// actuator outputs of the latest allocation
	Torque           [NumJoints]float64
	Power            float64
	SaturationFactor float64

	NumLandContacts int
	Achievements    Achievements
	Memory          Memory

	// free-form annotation sent along with the latest control request
	Info string

	course *Course
}

func (course *Course) newRobot(id string, p vector.Vector2, params RobotParams) *Robot {
	world := course.world

	robot := &Robot{
		ID:               id,
		Params:           params,
		SaturationFactor: 1,
		Achievements: Achievements{
			Falls: make([]FallEvent, 0),
			Log:   make([]string, 0),
		},
		course: course,
	}

	robot.Body = createDynamicBox(
		world,
		p,
		params.Body.Width/2, params.Body.Height/2,
		params.Body.Mass, params.Body.Friction,
		types.MakeRobotTag(id, types.RobotPart.Body),
	)

	hip := p.Add(params.Waist)
	knee := hip.Add(vector.MakeVector2(0, -params.UpperLeg.Length))
	axle := knee.Add(vector.MakeVector2(0, -params.LowerLeg.Length))

	robot.UpperLeg = createDynamicBox(
		world,
		hip.Add(vector.MakeVector2(0, -params.UpperLeg.Length/2)),
		params.UpperLeg.Width/2, params.UpperLeg.Length/2,
		params.UpperLeg.Mass, legFriction,
		types.MakeRobotTag(id, types.RobotPart.UpperLeg),
	)

	robot.LowerLeg = createDynamicBox(
		world,
		knee.Add(vector.MakeVector2(0, -params.LowerLeg.Length/2)),
		params.LowerLeg.Width/2, params.LowerLeg.Length/2,
		params.LowerLeg.Mass, legFriction,
		types.MakeRobotTag(id, types.RobotPart.LowerLeg),
	)

	robot.Wheel = createDynamicCircle(
		world,
		axle,
		params.Wheel.Radius,
		params.Wheel.Mass, params.Wheel.Friction,
		types.MakeRobotTag(id, types.RobotPart.Wheel),
	)

	robot.Joints[JointHip] = createRevoluteJoint(world, robot.Body, robot.UpperLeg, hip, func(def *box2d.B2RevoluteJointDef) {
		def.EnableMotor = true
		def.MotorSpeed = -1
		def.MaxMotorTorque = 1e-1
		def.EnableLimit = true
		def.LowerAngle = -math.Pi / 2
		def.UpperAngle = math.Pi / 2
	})

	robot.Joints[JointKnee] = createRevoluteJoint(world, robot.UpperLeg, robot.LowerLeg, knee, func(def *box2d.B2RevoluteJointDef) {
		def.EnableMotor = true
		def.MotorSpeed = 1
		def.MaxMotorTorque = 1e-1
		def.EnableLimit = true
		def.LowerAngle = 0
		def.UpperAngle = math.Pi
	})

	robot.Joints[JointAxle] = createRevoluteJoint(world, robot.LowerLeg, robot.Wheel, axle, func(def *box2d.B2RevoluteJointDef) {
		def.EnableMotor = false
		def.MotorSpeed = 0
		def.MaxMotorTorque = 0
	})

	course.collisions.onBeginContact(robot.handleBeginContact)
	course.collisions.onEndContact(robot.handleEndContact)

	return robot
}

func createDynamicBox(world *box2d.B2World, position vector.Vector2, hx, hy, mass, friction float64, tag types.BodyTag) *box2d.B2Body {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_dynamicBody
	bodydef.Position.Set(position.X, position.Y)

	body := world.CreateBody(&bodydef)

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(hx, hy)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.Density = mass / (4 * hx * hy)
	fixturedef.Friction = friction
	body.CreateFixtureFromDef(&fixturedef)
	body.SetUserData(tag)

	return body
}

func createDynamicCircle(world *box2d.B2World, position vector.Vector2, radius, mass, friction float64, tag types.BodyTag) *box2d.B2Body {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_dynamicBody
	bodydef.Position.Set(position.X, position.Y)

	body := world.CreateBody(&bodydef)

	shape := box2d.MakeB2CircleShape()
	shape.SetRadius(radius)

	fixturedef := box2d.MakeB2FixtureDef()
	fixturedef.Shape = &shape
	fixturedef.Density = mass / (math.Pi * radius * radius)
	fixturedef.Friction = friction
	body.CreateFixtureFromDef(&fixturedef)
	body.SetUserData(tag)

	return body
}

func createRevoluteJoint(world *box2d.B2World, bodyA, bodyB *box2d.B2Body, anchor vector.Vector2, configure func(def *box2d.B2RevoluteJointDef)) *box2d.B2RevoluteJoint {
	jointdef := box2d.MakeB2RevoluteJointDef()
	jointdef.Initialize(bodyA, bodyB, anchor.ToB2Vec2())
	configure(&jointdef)

	return world.CreateJoint(&jointdef).(*box2d.B2RevoluteJoint)
}

func bodyState(body *box2d.B2Body) BodyState {
	return BodyState{
		Position:        vector.FromB2Vec2(body.GetPosition()),
		Angle:           body.GetAngle(),
		Velocity:        vector.FromB2Vec2(body.GetLinearVelocity()),
		AngularVelocity: body.GetAngularVelocity(),
	}
}

// CenterOfMass approximates the robot's center of mass from the body and the
// wheel only; the legs are light enough to be ignored.
func (robot *Robot) CenterOfMass() vector.Vector2 {
	return vector.WeightedMean(
		vector.FromB2Vec2(robot.Body.GetPosition()), robot.Params.Body.Mass,
		vector.FromB2Vec2(robot.Wheel.GetPosition()), robot.Params.Wheel.Mass,
	)
}

func (robot *Robot) kinematicState() KinematicState {
	state := KinematicState{
		Body:  bodyState(robot.Body),
		Wheel: bodyState(robot.Wheel),
	}

	for i, joint := range robot.Joints {
		state.Anchors[i] = vector.FromB2Vec2(joint.GetAnchorA())
	}

	return state
}

func (robot *Robot) limits() Limits {
	return Limits{
		MaxTorque: robot.Params.MaxTorque,
		MaxPower:  robot.Params.MaxPower,
	}
}

// commit applies a realized command: the body is pushed by the command and
// the wheel by its reaction. Joint motors are released so the joints only
// measure from now on.
func (robot *Robot) commit(state KinematicState, allocation Allocation) {
	for _, joint := range robot.Joints {
		joint.EnableMotor(false)
	}

	u := allocation.Command
	robot.SaturationFactor = allocation.SaturationFactor

	robot.Body.ApplyForceToCenter(u.Force.ToB2Vec2(), true)
	robot.Body.ApplyTorque(u.Torque, true)
	robot.Wheel.ApplyForceToCenter(u.Force.Neg().ToB2Vec2(), true)
	robot.Wheel.ApplyTorque(reactionTorque(state, u), true)
}

// logAchievement must only be called from a mutation or a checkpoint callback.
func (robot *Robot) logAchievement(entry string) {
	robot.Achievements.Log = append(robot.Achievements.Log, entry)
}

func (robot *Robot) parts() []*box2d.B2Body {
	return []*box2d.B2Body{robot.Body, robot.UpperLeg, robot.LowerLeg, robot.Wheel}
}
