package course

import (
	"math"

	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/pkg/errors"
)

type BodyParams struct {
	Width    float64 `json:"w" yaml:"w"`
	Height   float64 `json:"h" yaml:"h"`
	Mass     float64 `json:"m" yaml:"m"`
	Friction float64 `json:"friction" yaml:"friction"`
}

type LegParams struct {
	Width  float64 `json:"w" yaml:"w"`
	Length float64 `json:"l" yaml:"l"`
	Mass   float64 `json:"m" yaml:"m"`
}

type WheelParams struct {
	Radius   float64 `json:"r" yaml:"r"`
	Mass     float64 `json:"m" yaml:"m"`
	Friction float64 `json:"friction" yaml:"friction"`
}

// RobotParams describes the geometry, masses and actuator limits of a
// wheeled biped. Lengths are in m, masses in kg, torque in N.m, power in W.
type RobotParams struct {
	Body      BodyParams     `json:"body" yaml:"body"`
	Waist     vector.Vector2 `json:"waist" yaml:"waist"` // hip position relative to the body center
	UpperLeg  LegParams      `json:"upperLeg" yaml:"upperLeg"`
	LowerLeg  LegParams      `json:"lowerLeg" yaml:"lowerLeg"`
	Wheel     WheelParams    `json:"wheel" yaml:"wheel"`
	MaxTorque float64        `json:"maxTorque" yaml:"maxTorque"`
	MaxPower  float64        `json:"maxPower" yaml:"maxPower"`
}

// DefaultRobotParams returns the stock robot:
//
//	body      0.6 x 0.4 m, 3 kg, friction 10
//	waist     (-0.15, 0)
//	legs      0.1 x 0.8 m, 0.01 kg each
//	wheel     r = 0.2 m, 1 kg, friction 10
//	maxTorque 100 N.m
//	maxPower  300 W
func DefaultRobotParams() RobotParams {
	return RobotParams{
		Body: BodyParams{
			Width:    0.6,
			Height:   0.4,
			Mass:     3,
			Friction: 10,
		},
		Waist: vector.MakeVector2(-0.15, 0),
		UpperLeg: LegParams{
			Width:  0.1,
			Length: 0.8,
			Mass:   0.01,
		},
		LowerLeg: LegParams{
			Width:  0.1,
			Length: 0.8,
			Mass:   0.01,
		},
		Wheel: WheelParams{
			Radius:   0.2,
			Mass:     1.0,
			Friction: 10,
		},
		MaxTorque: 100,
		MaxPower:  300,
	}
}

type BodyParamsOverrides struct {
	Width    *float64 `json:"w,omitempty" yaml:"w,omitempty"`
	Height   *float64 `json:"h,omitempty" yaml:"h,omitempty"`
	Mass     *float64 `json:"m,omitempty" yaml:"m,omitempty"`
	Friction *float64 `json:"friction,omitempty" yaml:"friction,omitempty"`
}

type LegParamsOverrides struct {
	Width  *float64 `json:"w,omitempty" yaml:"w,omitempty"`
	Length *float64 `json:"l,omitempty" yaml:"l,omitempty"`
	Mass   *float64 `json:"m,omitempty" yaml:"m,omitempty"`
}

type WheelParamsOverrides struct {
	Radius   *float64 `json:"r,omitempty" yaml:"r,omitempty"`
	Mass     *float64 `json:"m,omitempty" yaml:"m,omitempty"`
	Friction *float64 `json:"friction,omitempty" yaml:"friction,omitempty"`
}

// RobotParamsOverrides is a partial RobotParams; nil fields keep the base value.
type RobotParamsOverrides struct {
	Body      *BodyParamsOverrides  `json:"body,omitempty" yaml:"body,omitempty"`
	Waist     *vector.Vector2       `json:"waist,omitempty" yaml:"waist,omitempty"`
	UpperLeg  *LegParamsOverrides   `json:"upperLeg,omitempty" yaml:"upperLeg,omitempty"`
	LowerLeg  *LegParamsOverrides   `json:"lowerLeg,omitempty" yaml:"lowerLeg,omitempty"`
	Wheel     *WheelParamsOverrides `json:"wheel,omitempty" yaml:"wheel,omitempty"`
	MaxTorque *float64              `json:"maxTorque,omitempty" yaml:"maxTorque,omitempty"`
	MaxPower  *float64              `json:"maxPower,omitempty" yaml:"maxPower,omitempty"`
}

func override(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func (leg LegParams) merge(o *LegParamsOverrides) LegParams {
	if o != nil {
		override(&leg.Width, o.Width)
		override(&leg.Length, o.Length)
		override(&leg.Mass, o.Mass)
	}
	return leg
}

// Merge applies the overrides field by field on a copy of p.
func (p RobotParams) Merge(o RobotParamsOverrides) RobotParams {
	if o.Body != nil {
		override(&p.Body.Width, o.Body.Width)
		override(&p.Body.Height, o.Body.Height)
		override(&p.Body.Mass, o.Body.Mass)
		override(&p.Body.Friction, o.Body.Friction)
	}

	if o.Waist != nil {
		p.Waist = *o.Waist
	}

	p.UpperLeg = p.UpperLeg.merge(o.UpperLeg)
	p.LowerLeg = p.LowerLeg.merge(o.LowerLeg)

	if o.Wheel != nil {
		override(&p.Wheel.Radius, o.Wheel.Radius)
		override(&p.Wheel.Mass, o.Wheel.Mass)
		override(&p.Wheel.Friction, o.Wheel.Friction)
	}

	override(&p.MaxTorque, o.MaxTorque)
	override(&p.MaxPower, o.MaxPower)

	return p
}

func (p RobotParams) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"body.w", p.Body.Width},
		{"body.h", p.Body.Height},
		{"body.m", p.Body.Mass},
		{"upperLeg.w", p.UpperLeg.Width},
		{"upperLeg.l", p.UpperLeg.Length},
		{"upperLeg.m", p.UpperLeg.Mass},
		{"lowerLeg.w", p.LowerLeg.Width},
		{"lowerLeg.l", p.LowerLeg.Length},
		{"lowerLeg.m", p.LowerLeg.Mass},
		{"wheel.r", p.Wheel.Radius},
		{"wheel.m", p.Wheel.Mass},
		{"maxTorque", p.MaxTorque},
		{"maxPower", p.MaxPower},
	}

	for _, param := range positives {
		if math.IsNaN(param.value) || math.IsInf(param.value, 0) || param.value <= 0 {
			return errors.Wrapf(ErrInvalidParameter, "robot parameter %s must be a positive number (got %g)", param.name, param.value)
		}
	}

	for name, friction := range map[string]float64{"body.friction": p.Body.Friction, "wheel.friction": p.Wheel.Friction} {
		if math.IsNaN(friction) || math.IsInf(friction, 0) || friction < 0 {
			return errors.Wrapf(ErrInvalidParameter, "robot parameter %s must be a non-negative number (got %g)", name, friction)
		}
	}

	if !p.Waist.IsFinite() {
		return errors.Wrapf(ErrInvalidParameter, "robot parameter waist must be finite (got %s)", p.Waist)
	}

	return nil
}
