package fingerprint

import (
	"math"
	"testing"

	"github.com/DjordjeVuckovic/raglens/internal/scene"
	"github.com/stretchr/testify/assert"
)

func TestColorScale(t *testing.T) {
	s := NewColorScale(20)

	assert.Equal(t, 0.0, s.T(0))
	assert.Equal(t, scene.ColorSafe, s.Color(0))

	assert.InDelta(t, 0.1+0.9*0.05, s.T(1), 1e-9)
	assert.InDelta(t, 1.0, s.T(20), 1e-9)
	assert.InDelta(t, 1.0, s.T(40), 1e-9)

	assert.NotEqual(t, scene.ColorSafe, s.Color(1))
	assert.NotEqual(t, s.Color(1), s.Color(20))
}

func TestColorScale_Degenerate(t *testing.T) {
	s := NewColorScale(0)
	assert.InDelta(t, 1.0, s.T(1), 1e-9)

	s = NewColorScale(math.NaN())
	assert.Equal(t, 0.0, s.T(math.NaN()))
	assert.Equal(t, scene.ColorSafe, s.Color(-2))
}
