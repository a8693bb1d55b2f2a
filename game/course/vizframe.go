package course

import (
	"strconv"

	"github.com/ByteArena/box2d"
	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils/vector"
)

// labels are drawn from their anchor towards the bottom right, so the ones
// anchored slightly outside the viewport may still show
const labelMargin = 10

func vizObject(id string, kind string, body *box2d.B2Body) types.VizMessageObject {
	return types.VizMessageObject{
		Id:          id,
		Type:        kind,
		Position:    vector.FromB2Vec2(body.GetPosition()),
		Velocity:    vector.FromB2Vec2(body.GetLinearVelocity()),
		Orientation: body.GetAngle(),
	}
}

func (robot *Robot) viz() types.VizRobot {
	parts := make([]types.VizMessageObject, 0, 4)
	for _, body := range robot.parts() {
		tag, _ := body.GetUserData().(types.BodyTag)
		parts = append(parts, vizObject(robot.ID+"/"+tag.Part.String(), tag.Part.String(), body))
	}

	return types.VizRobot{
		Id:               robot.ID,
		Info:             robot.Info,
		Parts:            parts,
		NumLandContacts:  robot.NumLandContacts,
		Torque:           robot.Torque,
		Power:            robot.Power,
		SaturationFactor: robot.SaturationFactor,
	}
}

// GetVizFrame describes the course as seen from the current viewpoint.
func (course *Course) GetVizFrame() types.VizMessage {
	viewport := course.Viewport()

	msg := types.VizMessage{
		Tick:        course.tick,
		Time:        course.t,
		Viewpoint:   course.camera.viewpoint,
		Robots:      make([]types.VizRobot, 0, len(course.robotOrder)),
		Checkpoints: make([]types.VizCheckpoint, 0, len(course.checkpoints)),
		Texts:       make([]types.VizText, 0),
		Objects:     make([]types.VizMessageObject, 0),
	}

	for _, robot := range course.Robots() {
		msg.Robots = append(msg.Robots, robot.viz())
	}

	for _, checkpoint := range course.checkpoints {
		msg.Checkpoints = append(msg.Checkpoints, checkpoint.viz())
	}

	grown := viewport.Grow(labelMargin)
	for _, label := range course.labels.within(grown.Min, grown.Max) {
		msg.Texts = append(msg.Texts, label.viz())
	}

	i := 0
	for body := course.world.GetBodyList(); body != nil; body = body.GetNext() {
		if body.GetType() == box2d.B2BodyType.B2_staticBody {
			continue
		}

		tag, tagged := body.GetUserData().(types.BodyTag)
		if tagged && tag.IsRobot() {
			continue
		}

		kind := "block"
		if tagged && tag.IsFloor() {
			kind = "platform"
		}

		msg.Objects = append(msg.Objects, vizObject(kind+"-"+strconv.Itoa(i), kind, body))
		i++
	}

	return msg
}
