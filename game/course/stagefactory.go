package course

import (
	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils/vector"
)

// half height of the vertical checkpoint lines
const gateReach = 10

// StageFactory lays the course out from left to right. It keeps a cursor
// (X, Y) and a pending floor polyline.
type StageFactory struct {
	X, Y float64

	course        *Course
	floor         *box2d.B2Body
	floorVertices []vector.Vector2
}

func newStageFactory(course *Course) *StageFactory {
	return &StageFactory{
		course: course,
	}
}

func (sf *StageFactory) Move(dx, dy float64) {
	sf.X += dx
	sf.Y += dy
}

func (sf *StageFactory) Pos() vector.Vector2 {
	return vector.MakeVector2(sf.X, sf.Y)
}

func (sf *StageFactory) BeginFloor() {
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_staticBody

	sf.floor = sf.course.world.CreateBody(&bodydef)
	sf.floor.SetUserData(types.MakeFloorTag())

	sf.floorVertices = []vector.Vector2{sf.Pos()}
}

// AddFloor moves the cursor by (dx, dy) and extends the floor to it.
func (sf *StageFactory) AddFloor(dx, dy float64) {
	sf.Move(dx, dy)
	sf.floorVertices = append(sf.floorVertices, sf.Pos())
}

func (sf *StageFactory) EndFloor() {
	vertices := make([]box2d.B2Vec2, len(sf.floorVertices))
	for i, v := range sf.floorVertices {
		vertices[i] = v.ToB2Vec2()
	}

	shape := box2d.MakeB2ChainShape()
	shape.CreateChain(vertices, len(vertices))
	sf.floor.CreateFixture(&shape, 0.0)

	sf.course.floors = append(sf.course.floors, sf.floorVertices)
	sf.floor = nil
	sf.floorVertices = nil
}

// PutText places a label relative to the cursor.
func (sf *StageFactory) PutText(dx, dy float64, text string) *Label {
	return sf.PutTextAt(vector.MakeVector2(sf.X+dx, sf.Y+dy), text)
}

func (sf *StageFactory) PutTextAt(position vector.Vector2, text string) *Label {
	return sf.course.labels.add(position, text)
}

// MakeGate creates a vertical checkpoint line at the cursor's x.
func (sf *StageFactory) MakeGate(callback CheckpointCallback) *Checkpoint {
	return sf.MakeGateAt(sf.X, callback)
}

func (sf *StageFactory) MakeGateAt(x float64, callback CheckpointCallback) *Checkpoint {
	from := vector.MakeVector2(x, sf.Y-gateReach)
	to := vector.MakeVector2(x, sf.Y+gateReach)

	shape := box2d.MakeB2EdgeShape()
	shape.Set(from.ToB2Vec2(), to.ToB2Vec2())

	return sf.course.newCheckpoint(&shape, from, to, callback)
}

// MakeZone creates a box checkpoint of half extents (hx, hy) around center.
func (sf *StageFactory) MakeZone(hx, hy float64, center vector.Vector2, callback CheckpointCallback) *Checkpoint {
	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBoxFromCenterAndAngle(hx, hy, center.ToB2Vec2(), 0)

	from := center.Sub(vector.MakeVector2(hx, hy))
	to := center.Add(vector.MakeVector2(hx, hy))

	return sf.course.newCheckpoint(&shape, from, to, callback)
}
