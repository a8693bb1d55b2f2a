package vector_test

import (
	"encoding/json"
	"testing"

	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCrossAndDot(t *testing.T) {
	a := vector.MakeVector2(1, 2)
	b := vector.MakeVector2(3, -1)

	assert.Equal(t, 1.0*-1-2*3, a.Cross(b))
	assert.Equal(t, 1.0*3+2*-1, a.Dot(b))
	assert.Equal(t, -a.Cross(b), b.Cross(a))
}

func TestWeightedMean(t *testing.T) {
	c := vector.WeightedMean(vector.MakeVector2(0, 0), 3, vector.MakeVector2(4, 8), 1)
	assert.InDelta(t, 1.0, c.X, 1e-12)
	assert.InDelta(t, 2.0, c.Y, 1e-12)
}

func TestUnmarshalJSON(t *testing.T) {
	var fromArray, fromObject vector.Vector2

	require.NoError(t, json.Unmarshal([]byte(`[1.5, -2]`), &fromArray))
	require.NoError(t, json.Unmarshal([]byte(`{"x": 1.5, "y": -2}`), &fromObject))

	assert.Equal(t, fromArray, fromObject)
	assert.Error(t, json.Unmarshal([]byte(`[1, 2, 3]`), &fromArray))
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &fromArray))
}

func TestUnmarshalYAML(t *testing.T) {
	var fromSeq, fromMap vector.Vector2

	require.NoError(t, yaml.Unmarshal([]byte(`[1.5, -2]`), &fromSeq))
	require.NoError(t, yaml.Unmarshal([]byte("x: 1.5\ny: -2\n"), &fromMap))

	assert.Equal(t, vector.MakeVector2(1.5, -2), fromSeq)
	assert.Equal(t, fromSeq, fromMap)
	assert.Error(t, yaml.Unmarshal([]byte(`[1, 2, 3]`), &fromSeq))
	assert.Error(t, yaml.Unmarshal([]byte(`nope`), &fromSeq))
}

func TestMarshalJSONKeepsPrecision(t *testing.T) {
	data, err := json.Marshal(vector.MakeVector2(0.123456789, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x": 0.123456789, "y": 2}`, string(data))
}
