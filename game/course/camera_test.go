package course

import (
	"math"
	"testing"

	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraFollowDeadZone(t *testing.T) {
	cam := newCamera()

	cam.follow(vector.MakeVector2(1.5, 0.5))
	assert.Equal(t, vector.MakeVector2(0, 0), cam.viewpoint)

	cam.follow(vector.MakeVector2(5, 3))
	assert.Equal(t, vector.MakeVector2(3, 2), cam.viewpoint)

	cam.follow(vector.MakeVector2(-5, -3))
	assert.Equal(t, vector.MakeVector2(-3, -2), cam.viewpoint)
}

func TestManualViewpoint(t *testing.T) {
	course := newTestCourse(t, flatStage)
	spawnTestRobot(t, course, vector.MakeVector2(20, 2))

	p, err := course.SetViewpoint(vector.MakeVector2(-4, 1))
	require.NoError(t, err)
	assert.Equal(t, vector.MakeVector2(-4, 1), p)
	assert.Equal(t, CameraManual, course.CameraMode())

	// manual mode ignores the robot
	assert.Equal(t, vector.MakeVector2(-4, 1), course.Viewpoint())

	_, err = course.SetViewpoint(vector.MakeVector2(math.NaN(), 0))
	assert.True(t, IsInvalidParameter(err))

	course.SetCameraAuto()
	assert.Equal(t, CameraAuto, course.CameraMode())
	assert.Equal(t, vector.MakeVector2(18, 1), course.Viewpoint())
}

func TestViewport(t *testing.T) {
	course := newTestCourse(t, flatStage)

	viewport := course.Viewport()
	assert.Equal(t, vector.MakeVector2(-8, -3), viewport.Min)
	assert.Equal(t, vector.MakeVector2(8, 6), viewport.Max)

	assert.True(t, viewport.Contains(vector.MakeVector2(0, 0)))
	assert.False(t, viewport.Contains(vector.MakeVector2(9, 0)))
	assert.True(t, viewport.Grow(1).Contains(vector.MakeVector2(9, 0)))
}
