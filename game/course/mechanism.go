package course

import (
	"math"

	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils/vector"
)

// Mechanisms are always armed: they react to every qualifying contact.

// Conveyor drives whatever rests on its fixture by giving the contact a
// tangent speed. This only alters the contact being solved, never the
// registry, so it is applied directly from PreSolve.
type Conveyor struct {
	fixture *box2d.B2Fixture
	speed   float64
}

func (course *Course) newConveyor(fixture *box2d.B2Fixture, speed float64) *Conveyor {
	conveyor := &Conveyor{
		fixture: fixture,
		speed:   speed,
	}
	course.collisions.onPreSolve(conveyor.handlePreSolve)
	return conveyor
}

func (conveyor *Conveyor) handlePreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
	if otherFixture(conveyor.fixture, contact.GetFixtureA(), contact.GetFixtureB()) == nil {
		return
	}
	contact.SetTangentSpeed(conveyor.speed)
}

// Elevator is a kinematic platform whose vertical speed follows ratio*|vx| of
// the body riding it. Commands coming from the same step are coalesced into a
// single queued mutation; the latest one wins.
type Elevator struct {
	body    *box2d.B2Body
	fixture *box2d.B2Fixture
	ratio   float64
	target  float64
	queued  bool
	course  *Course
}

func (course *Course) newElevator(body *box2d.B2Body, fixture *box2d.B2Fixture, ratio float64) *Elevator {
	elevator := &Elevator{
		body:    body,
		fixture: fixture,
		ratio:   ratio,
		course:  course,
	}
	course.collisions.onPreSolve(elevator.handlePreSolve)
	return elevator
}

func (elevator *Elevator) handlePreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
	other := otherFixture(elevator.fixture, contact.GetFixtureA(), contact.GetFixtureB())
	if other == nil {
		return
	}

	v := other.GetBody().GetLinearVelocity()
	elevator.command(elevator.ratio * math.Abs(v.X))
}

func (elevator *Elevator) command(vy float64) {
	elevator.target = vy
	if elevator.queued {
		return
	}

	elevator.queued = true
	elevator.course.mutations.Enqueue(func() {
		elevator.queued = false
		elevator.body.SetLinearVelocity(box2d.MakeB2Vec2(0, elevator.target))
	})
}

func (elevator *Elevator) Velocity() vector.Vector2 {
	return vector.FromB2Vec2(elevator.body.GetLinearVelocity())
}

// createFloorBlock creates a floor-tagged box of half extents (hx, hy)
// centered on center.
func (course *Course) createFloorBlock(bodytype uint8, center vector.Vector2, hx, hy float64) (*box2d.B2Body, *box2d.B2Fixture) {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = bodytype
	bodydef.Position.Set(center.X, center.Y)

	body := course.world.CreateBody(&bodydef)
	body.SetUserData(types.MakeFloorTag())

	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(hx, hy)

	return body, body.CreateFixture(&shape, 0.0)
}
