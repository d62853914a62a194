package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachine_Transitions(t *testing.T) {
	var m Machine
	assert.Equal(t, Ready, m.State())

	assert.False(t, m.Pause())
	assert.False(t, m.Resume())
	assert.False(t, m.End())

	assert.True(t, m.Start())
	assert.False(t, m.Start())
	assert.Equal(t, Playing, m.State())

	assert.True(t, m.Pause())
	assert.Equal(t, Paused, m.State())
	assert.False(t, m.Pause())

	assert.True(t, m.Resume())
	assert.Equal(t, Playing, m.State())

	assert.True(t, m.End())
	assert.Equal(t, GameOver, m.State())
	assert.False(t, m.Start())
	assert.False(t, m.Resume())

	m.Reset()
	assert.Equal(t, Ready, m.State())
}

func TestDirection(t *testing.T) {
	tests := []struct {
		dir      Direction
		delta    Point
		opposite Direction
	}{
		{dir: Up, delta: Point{0, -1}, opposite: Down},
		{dir: Down, delta: Point{0, 1}, opposite: Up},
		{dir: Left, delta: Point{-1, 0}, opposite: Right},
		{dir: Right, delta: Point{1, 0}, opposite: Left},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.delta, tt.dir.Delta())
			assert.Equal(t, tt.opposite, tt.dir.Opposite())
			assert.Equal(t, Point{}, tt.dir.Delta().Add(tt.opposite.Delta()))
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "READY", Ready.String())
	assert.Equal(t, "GAME_OVER", GameOver.String())
	assert.Equal(t, "State(9)", State(9).String())
}
