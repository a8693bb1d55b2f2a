package types

import (
	"github.com/bytearena/pendulum/common/utils/vector"
)

// VizMessage is one presentation frame; it carries no simulation state that
// a controller needs.
type VizMessage struct {
	Tick        uint64             `json:"tick"`
	Time        float64            `json:"t"`
	Viewpoint   vector.Vector2     `json:"viewpoint"`
	Robots      []VizRobot         `json:"robots"`
	Checkpoints []VizCheckpoint    `json:"checkpoints"`
	Texts       []VizText          `json:"texts"`
	Objects     []VizMessageObject `json:"objects"`
}

type VizMessageObject struct {
	Id          string         `json:"id"`
	Type        string         `json:"type"`
	Position    vector.Vector2 `json:"position"`
	Velocity    vector.Vector2 `json:"velocity"`
	Orientation float64        `json:"orientation"`
}

type VizRobot struct {
	Id               string             `json:"id"`
	Info             string             `json:"info,omitempty"`
	Parts            []VizMessageObject `json:"parts"`
	NumLandContacts  int                `json:"numLandContacts"`
	Torque           [3]float64         `json:"torque"`
	Power            float64            `json:"power"`
	SaturationFactor float64            `json:"saturationFactor"`
}

type VizCheckpoint struct {
	From  vector.Vector2 `json:"from"`
	To    vector.Vector2 `json:"to"`
	Armed bool           `json:"armed"`
}

type VizText struct {
	Position vector.Vector2 `json:"position"`
	Text     string         `json:"text"`
}
