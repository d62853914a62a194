package snake

import (
	"math/rand"
	"time"

	"dailyvocab/internal/game"
)

const (
	BoardSize = 20

	MinDifficulty = 1
	MaxDifficulty = 3

	baseInterval = 150 * time.Millisecond
	minInterval  = 80 * time.Millisecond
)

var startPosition = game.Point{X: 10, Y: 10}

// Game is a snake simulation on a square board.
// It is not safe for concurrent use; callers serialize Step and Turn.
type Game struct {
	game.Machine

	body       []game.Point
	direction  game.Direction
	lastMoved  game.Direction
	food       game.Point
	score      int
	difficulty int
	interval   time.Duration
	rng        *rand.Rand
}

// New creates a ready game at the given difficulty
func New(difficulty int, rng *rand.Rand) *Game {
	g := &Game{rng: rng}
	g.difficulty = clampDifficulty(difficulty)
	g.Reset()
	return g
}

func clampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// Reset puts the snake back at the start and returns to Ready
func (g *Game) Reset() {
	g.Machine.Reset()
	g.body = []game.Point{startPosition}
	g.direction = game.Right
	g.lastMoved = game.Right
	g.score = 0
	g.interval = g.startInterval()
	g.placeFood()
}

// Start begins play; the interval is recomputed from the difficulty
func (g *Game) Start() bool {
	if !g.Machine.Start() {
		return false
	}
	g.interval = g.startInterval()
	return true
}

func (g *Game) startInterval() time.Duration {
	return baseInterval - time.Duration(g.difficulty-1)*30*time.Millisecond
}

// SetDifficulty changes the level; only allowed before or after a game
func (g *Game) SetDifficulty(d int) bool {
	if s := g.State(); s != game.Ready && s != game.GameOver {
		return false
	}
	g.difficulty = clampDifficulty(d)
	g.interval = g.startInterval()
	return true
}

// Turn changes heading; reversing onto the body is ignored
func (g *Game) Turn(d game.Direction) bool {
	if g.State() != game.Playing {
		return false
	}
	if d == g.lastMoved.Opposite() {
		return false
	}
	g.direction = d
	return true
}

// Step advances the snake one cell
func (g *Game) Step() {
	if g.State() != game.Playing {
		return
	}

	head := g.body[0].Add(g.direction.Delta())
	g.lastMoved = g.direction

	if !InBounds(head) || g.hitsBody(head) {
		g.End()
		return
	}

	g.body = append([]game.Point{head}, g.body...)

	if head == g.food {
		g.score += 10 * g.difficulty
		if !g.placeFood() {
			g.End()
			return
		}
		if g.score%(50*g.difficulty) == 0 && g.interval > minInterval {
			g.interval -= 10 * time.Millisecond
			if g.interval < minInterval {
				g.interval = minInterval
			}
		}
		return
	}

	g.body = g.body[:len(g.body)-1]
}

func (g *Game) hitsBody(p game.Point) bool {
	for _, segment := range g.body {
		if segment == p {
			return true
		}
	}
	return false
}

// placeFood puts food on a random free cell, false when the board is full
func (g *Game) placeFood() bool {
	occupied := make(map[game.Point]bool, len(g.body))
	for _, segment := range g.body {
		occupied[segment] = true
	}

	free := make([]game.Point, 0, BoardSize*BoardSize-len(g.body))
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			p := game.Point{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		return false
	}

	g.food = free[g.rng.Intn(len(free))]
	return true
}

// InBounds reports whether p lies on the board
func InBounds(p game.Point) bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Collides reports whether moving the head onto p would end the game
func (g *Game) Collides(p game.Point) bool {
	return !InBounds(p) || g.hitsBody(p)
}

// Body returns a copy of the snake, head first
func (g *Game) Body() []game.Point {
	body := make([]game.Point, len(g.body))
	copy(body, g.body)
	return body
}

func (g *Game) Head() game.Point          { return g.body[0] }
func (g *Game) Food() game.Point          { return g.food }
func (g *Game) Direction() game.Direction { return g.direction }
func (g *Game) Score() int                { return g.score }
func (g *Game) Difficulty() int           { return g.difficulty }
func (g *Game) Interval() time.Duration   { return g.interval }
