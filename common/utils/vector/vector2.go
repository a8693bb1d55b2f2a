package vector

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/ByteArena/box2d"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Vector2 is a planar vector expressed in meters (world coordinates, y up).
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func MakeVector2(x float64, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Returns a null vector2
func MakeNullVector2() Vector2 {
	return MakeVector2(0, 0)
}

func (v Vector2) Get() (float64, float64) {
	return v.X, v.Y
}

// UnmarshalJSON accepts both {"x":..,"y":..} and [x, y].
func (v *Vector2) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return errors.Errorf("vector: expected 2 components, got %d", len(pair))
		}
		v.X, v.Y = pair[0], pair[1]
		return nil
	}

	type plain Vector2
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.Wrap(err, "vector: expected [x, y] or {\"x\", \"y\"}")
	}
	*v = Vector2(p)
	return nil
}

// UnmarshalYAML accepts the same two forms as UnmarshalJSON.
func (v *Vector2) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return errors.Wrap(err, "vector: expected [x, y]")
		}
		if len(pair) != 2 {
			return errors.Errorf("vector: expected 2 components, got %d", len(pair))
		}
		v.X, v.Y = pair[0], pair[1]
		return nil
	}

	type plain Vector2
	var p plain
	if err := node.Decode(&p); err != nil {
		return errors.Wrap(err, "vector: expected [x, y] or {x, y}")
	}
	*v = Vector2(p)
	return nil
}

func (a Vector2) Add(b Vector2) Vector2 {
	a.X += b.X
	a.Y += b.Y
	return a
}

func (a Vector2) Sub(b Vector2) Vector2 {
	a.X -= b.X
	a.Y -= b.Y
	return a
}

func (a Vector2) Scale(scale float64) Vector2 {
	a.X *= scale
	a.Y *= scale
	return a
}

func (a Vector2) DivScalar(f float64) Vector2 {
	a.X /= f
	a.Y /= f
	return a
}

func (a Vector2) Neg() Vector2 {
	return Vector2{-a.X, -a.Y}
}

func (a Vector2) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector2) MagSq() float64 {
	return (a.X*a.X + a.Y*a.Y)
}

// Cross is the z component of the 3D cross product (a.x*v.y - a.y*v.x).
func (a Vector2) Cross(v Vector2) float64 {
	return a.X*v.Y - a.Y*v.X
}

func (a Vector2) Dot(v Vector2) float64 {
	return a.X*v.X + a.Y*v.Y
}

// WeightedMean returns (a*wa + b*wb) / (wa + wb).
func WeightedMean(a Vector2, wa float64, b Vector2, wb float64) Vector2 {
	return a.Scale(wa).Add(b.Scale(wb)).DivScalar(wa + wb)
}

func (a Vector2) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y)
}

func (a Vector2) IsNull() bool {
	return isZero(a.X) && isZero(a.Y)
}

func (a Vector2) Equals(b Vector2) bool {
	return b.Sub(a).IsNull()
}

func (a Vector2) String() string {
	return "<Vector2(" + strconv.FormatFloat(a.X, 'f', 5, 64) + ", " + strconv.FormatFloat(a.Y, 'f', 5, 64) + ")>"
}

func (a Vector2) ToFloatArray() [2]float64 {
	return [2]float64{a.X, a.Y}
}

func (a Vector2) ToB2Vec2() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(a.X, a.Y)
}

func FromB2Vec2(v box2d.B2Vec2) Vector2 {
	return MakeVector2(v.X, v.Y)
}

var epsilon float64 = 0.000001

func isZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
