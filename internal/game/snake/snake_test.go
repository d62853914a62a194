package snake

import (
	"math/rand"
	"testing"
	"time"

	"dailyvocab/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStarted(t *testing.T, difficulty int) *Game {
	t.Helper()
	g := New(difficulty, rand.New(rand.NewSource(1)))
	require.True(t, g.Start())
	return g
}

func TestNew(t *testing.T) {
	g := New(2, rand.New(rand.NewSource(1)))

	assert.Equal(t, game.Ready, g.State())
	assert.Equal(t, []game.Point{{X: 10, Y: 10}}, g.Body())
	assert.Equal(t, game.Right, g.Direction())
	assert.NotEqual(t, g.Head(), g.Food())
	assert.True(t, InBounds(g.Food()))
}

func TestStart_IntervalByDifficulty(t *testing.T) {
	tests := []struct {
		difficulty int
		expected   time.Duration
	}{
		{difficulty: 0, expected: 150 * time.Millisecond},
		{difficulty: 1, expected: 150 * time.Millisecond},
		{difficulty: 2, expected: 120 * time.Millisecond},
		{difficulty: 3, expected: 90 * time.Millisecond},
		{difficulty: 9, expected: 90 * time.Millisecond},
	}

	for _, tt := range tests {
		g := newStarted(t, tt.difficulty)
		assert.Equal(t, tt.expected, g.Interval(), "difficulty=%d", tt.difficulty)
	}
}

func TestStep_MovesWithoutGrowing(t *testing.T) {
	g := newStarted(t, 1)
	g.food = game.Point{X: 0, Y: 0}

	g.Step()

	assert.Equal(t, []game.Point{{X: 11, Y: 10}}, g.Body())
	assert.Equal(t, 0, g.Score())
}

func TestStep_EatsFood(t *testing.T) {
	g := newStarted(t, 2)
	g.food = game.Point{X: 11, Y: 10}

	g.Step()

	assert.Equal(t, []game.Point{{X: 11, Y: 10}, {X: 10, Y: 10}}, g.Body())
	assert.Equal(t, 20, g.Score())
	assert.False(t, g.hitsBody(g.Food()))
}

func TestStep_SpeedsUpOnMilestone(t *testing.T) {
	g := newStarted(t, 1)
	g.score = 40
	g.food = game.Point{X: 11, Y: 10}

	g.Step()

	assert.Equal(t, 50, g.Score())
	assert.Equal(t, 140*time.Millisecond, g.Interval())
}

func TestStep_IntervalFloor(t *testing.T) {
	g := newStarted(t, 3)
	g.interval = 85 * time.Millisecond
	g.score = 120
	g.food = game.Point{X: 11, Y: 10}

	g.Step()

	assert.Equal(t, 150, g.Score())
	assert.Equal(t, 80*time.Millisecond, g.Interval())
}

func TestStep_WallCollision(t *testing.T) {
	g := newStarted(t, 1)
	g.food = game.Point{X: 0, Y: 0}

	for i := 0; i < 9; i++ {
		g.Step()
		require.Equal(t, game.Playing, g.State())
	}
	assert.Equal(t, game.Point{X: 19, Y: 10}, g.Head())

	g.Step()
	assert.Equal(t, game.GameOver, g.State())
}

func TestStep_SelfCollision(t *testing.T) {
	g := newStarted(t, 1)
	g.body = []game.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}}
	g.lastMoved = game.Right
	g.food = game.Point{X: 0, Y: 0}

	require.True(t, g.Turn(game.Down))
	g.Step()

	assert.Equal(t, game.GameOver, g.State())
}

func TestTurn(t *testing.T) {
	g := New(1, rand.New(rand.NewSource(1)))
	assert.False(t, g.Turn(game.Up), "turning before start")

	require.True(t, g.Start())
	assert.False(t, g.Turn(game.Left), "reversal")
	assert.True(t, g.Turn(game.Up))

	// a second turn within the same tick must not reverse onto the last move
	assert.False(t, g.Turn(game.Left))
	assert.Equal(t, game.Up, g.Direction())

	g.food = game.Point{X: 0, Y: 0}
	g.Step()
	assert.True(t, g.Turn(game.Left))
}

func TestSetDifficulty(t *testing.T) {
	g := New(1, rand.New(rand.NewSource(1)))
	assert.True(t, g.SetDifficulty(3))
	assert.Equal(t, 3, g.Difficulty())

	require.True(t, g.Start())
	assert.False(t, g.SetDifficulty(1))

	g.End()
	assert.True(t, g.SetDifficulty(2))
}

func TestPauseBlocksStep(t *testing.T) {
	g := newStarted(t, 1)
	require.True(t, g.Pause())

	g.Step()
	assert.Equal(t, game.Point{X: 10, Y: 10}, g.Head())

	require.True(t, g.Resume())
	g.Step()
	assert.Equal(t, game.Point{X: 11, Y: 10}, g.Head())
}

func TestReset(t *testing.T) {
	g := newStarted(t, 1)
	g.score = 30
	g.End()

	g.Reset()

	assert.Equal(t, game.Ready, g.State())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, []game.Point{{X: 10, Y: 10}}, g.Body())
}

func TestFullBoardEndsGame(t *testing.T) {
	g := newStarted(t, 1)

	body := make([]game.Point, 0, BoardSize*BoardSize)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			body = append(body, game.Point{X: x, Y: y})
		}
	}
	// leave one cell free in front of the head
	head := game.Point{X: 1, Y: 0}
	free := game.Point{X: 0, Y: 0}
	ordered := []game.Point{head}
	for _, p := range body {
		if p != head && p != free {
			ordered = append(ordered, p)
		}
	}
	g.body = ordered
	g.direction = game.Left
	g.lastMoved = game.Up
	g.food = free

	g.Step()

	assert.Equal(t, game.GameOver, g.State())
	assert.Equal(t, 10, g.Score())
}

func TestCollides_Total(t *testing.T) {
	g := newStarted(t, 1)

	for y := -2; y < BoardSize+2; y++ {
		for x := -2; x < BoardSize+2; x++ {
			p := game.Point{X: x, Y: y}
			expected := !InBounds(p) || p == g.Head()
			assert.Equal(t, expected, g.Collides(p), "point %v", p)
		}
	}
}
