package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 95))
	assert.Equal(t, 42.0, Clamp(42, 0, 95))
	assert.Equal(t, 95.0, Clamp(120, 0, 95))
}

func TestRoundTo(t *testing.T) {
	assert.InDelta(t, 180.2, RoundTo(180.24, 1), 1e-9)
	assert.InDelta(t, 180.3, RoundTo(180.25, 1), 1e-9)
	assert.InDelta(t, 27.0, RoundTo(27.04, 1), 1e-9)
	assert.InDelta(t, 3.14, RoundTo(3.14159, 2), 1e-9)
}

func TestLerp(t *testing.T) {
	assert.InDelta(t, 0.0, Lerp(0, 50, 0), 1e-9)
	assert.InDelta(t, 50.0, Lerp(0, 50, 1), 1e-9)
	assert.InDelta(t, 25.0, Lerp(0, 50, 0.5), 1e-9)
}
