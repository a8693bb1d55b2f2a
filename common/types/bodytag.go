package types

import "github.com/ByteArena/box2d"

// BodyTag is set as UserData on Box2D bodies so that contact callbacks can
// tell robot parts, floors and sensors apart without probing fields.
type BodyTag struct {
	Kind    Kind
	RobotID string
	Part    Part
}

type Kind string

func (k Kind) String() string {
	switch k {
	case BodyKind.Robot:
		return "Robot"
	case BodyKind.Floor:
		return "Floor"
	case BodyKind.Sensor:
		return "Sensor"
	}

	return "UnknownKind"
}

var BodyKind = struct {
	Robot  Kind
	Floor  Kind
	Sensor Kind
}{
	Robot:  Kind("robot"),
	Floor:  Kind("floor"),
	Sensor: Kind("sensor"),
}

type Part string

func (p Part) String() string {
	return string(p)
}

var RobotPart = struct {
	Body     Part
	UpperLeg Part
	LowerLeg Part
	Wheel    Part
}{
	Body:     Part("body"),
	UpperLeg: Part("upperLeg"),
	LowerLeg: Part("lowerLeg"),
	Wheel:    Part("wheel"),
}

func MakeRobotTag(robotID string, part Part) BodyTag {
	return BodyTag{
		Kind:    BodyKind.Robot,
		RobotID: robotID,
		Part:    part,
	}
}

func MakeFloorTag() BodyTag {
	return BodyTag{Kind: BodyKind.Floor}
}

func MakeSensorTag() BodyTag {
	return BodyTag{Kind: BodyKind.Sensor}
}

func (t BodyTag) IsRobot() bool {
	return t.Kind == BodyKind.Robot
}

func (t BodyTag) IsFloor() bool {
	return t.Kind == BodyKind.Floor
}

// TagOf reads the tag of the body owning fixture; untagged bodies (blocks,
// ceilings) report ok == false.
func TagOf(fixture *box2d.B2Fixture) (BodyTag, bool) {
	if fixture == nil || fixture.GetBody() == nil {
		return BodyTag{}, false
	}

	tag, ok := fixture.GetBody().GetUserData().(BodyTag)
	return tag, ok
}
