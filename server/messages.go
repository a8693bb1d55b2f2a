package server

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/bytearena/pendulum/game/course"
	"github.com/pkg/errors"
)

// flexFloat accepts a JSON number or a string holding one.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = strings.TrimSpace(str)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.Wrapf(course.ErrInvalidParameter, "%s is not a number", string(data))
	}

	*f = flexFloat(value)
	return nil
}

func toVector2(p []flexFloat) vector.Vector2 {
	return vector.MakeVector2(float64(p[0]), float64(p[1]))
}

type spawnRequest struct {
	P      []flexFloat                 `json:"p"`
	Params course.RobotParamsOverrides `json:"params"`
}

type spawnResponse struct {
	Id string `json:"id"`
}

type controlRequest struct {
	Id        string      `json:"id"`
	U         []flexFloat `json:"u"`
	DoControl bool        `json:"doControl"`
	Info      *string     `json:"info"`
}

func (req controlRequest) command() course.Command {
	return course.MakeCommand(float64(req.U[0]), float64(req.U[1]), float64(req.U[2]))
}

func (req controlRequest) info() string {
	if req.Info == nil {
		return ""
	}
	return *req.Info
}

type cameraRequest struct {
	Mode string      `json:"mode"`
	P    []flexFloat `json:"p"`
}

type achievementsResponse struct {
	Achievements course.Achievements `json:"achievements"`
	Memory       course.Memory       `json:"memory"`
}

type vizFrameMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}
