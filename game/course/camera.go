package course

import (
	"math"

	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/pkg/errors"
)

// dead zone of the auto-follow camera around the viewpoint, in m
const (
	cameraSlackX = 2
	cameraSlackY = 1
)

// visible area around the viewpoint, in m
const (
	viewLeft   = 8
	viewRight  = 8
	viewBottom = 3
	viewTop    = 6
)

type CameraMode string

const (
	CameraAuto   CameraMode = "auto"
	CameraManual CameraMode = "manual"
)

type camera struct {
	mode      CameraMode
	viewpoint vector.Vector2
}

func newCamera() camera {
	return camera{
		mode:      CameraAuto,
		viewpoint: vector.MakeNullVector2(),
	}
}

// follow drags the viewpoint along when target leaves the dead zone.
func (cam *camera) follow(target vector.Vector2) {
	if cam.mode != CameraAuto {
		return
	}

	if math.Abs(cam.viewpoint.X-target.X) > cameraSlackX {
		if cam.viewpoint.X > target.X {
			cam.viewpoint.X = target.X + cameraSlackX
		} else {
			cam.viewpoint.X = target.X - cameraSlackX
		}
	}

	if math.Abs(cam.viewpoint.Y-target.Y) > cameraSlackY {
		if cam.viewpoint.Y > target.Y {
			cam.viewpoint.Y = target.Y + cameraSlackY
		} else {
			cam.viewpoint.Y = target.Y - cameraSlackY
		}
	}
}

// Viewport is an axis-aligned area of the course.
type Viewport struct {
	Min vector.Vector2 `json:"min"`
	Max vector.Vector2 `json:"max"`
}

func (cam camera) viewport() Viewport {
	return Viewport{
		Min: vector.MakeVector2(cam.viewpoint.X-viewLeft, cam.viewpoint.Y-viewBottom),
		Max: vector.MakeVector2(cam.viewpoint.X+viewRight, cam.viewpoint.Y+viewTop),
	}
}

func (viewport Viewport) Grow(margin float64) Viewport {
	return Viewport{
		Min: viewport.Min.Sub(vector.MakeVector2(margin, margin)),
		Max: viewport.Max.Add(vector.MakeVector2(margin, margin)),
	}
}

func (viewport Viewport) Contains(p vector.Vector2) bool {
	return p.X >= viewport.Min.X && p.X <= viewport.Max.X &&
		p.Y >= viewport.Min.Y && p.Y <= viewport.Max.Y
}

func (course *Course) SetCameraAuto() vector.Vector2 {
	course.camera.mode = CameraAuto
	return course.camera.viewpoint
}

func (course *Course) SetViewpoint(p vector.Vector2) (vector.Vector2, error) {
	if !p.IsFinite() {
		return course.camera.viewpoint, errors.Wrapf(ErrInvalidParameter, "viewpoint %s is not finite", p)
	}

	course.camera.mode = CameraManual
	course.camera.viewpoint = p

	return p, nil
}

func (course *Course) CameraMode() CameraMode {
	return course.camera.mode
}

// Viewpoint follows the latest spawned robot when the camera is in auto mode.
func (course *Course) Viewpoint() vector.Vector2 {
	if course.latestRobot != nil {
		course.camera.follow(vector.FromB2Vec2(course.latestRobot.Body.GetPosition()))
	}
	return course.camera.viewpoint
}

func (course *Course) Viewport() Viewport {
	course.Viewpoint()
	return course.camera.viewport()
}
