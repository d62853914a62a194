package tetris

import (
	"math/rand"
	"time"

	"dailyvocab/internal/game"
)

const (
	Width  = 10
	Height = 20

	baseInterval  = 1000 * time.Millisecond
	levelStep     = 100 * time.Millisecond
	minInterval   = 100 * time.Millisecond
	linesPerLevel = 10
	pointsPerLine = 100
)

// Cell is a board square: 0 is empty, otherwise Kind+1 of the locked block
type Cell uint8

// Board is the locked playfield indexed [y][x]
type Board [Height][Width]Cell

var spawnPosition = game.Point{X: Width/2 - 1, Y: 0}

// Game is a tetris simulation.
// It is not safe for concurrent use; callers serialize Step and the move methods.
type Game struct {
	game.Machine

	board    Board
	current  Piece
	next     Piece
	score    int
	lines    int
	level    int
	interval time.Duration
	rng      *rand.Rand
}

// New creates a ready game
func New(rng *rand.Rand) *Game {
	g := &Game{rng: rng}
	g.Reset()
	return g
}

// Reset clears the board and returns to Ready
func (g *Game) Reset() {
	g.Machine.Reset()
	g.board = Board{}
	g.current = Piece{}
	g.next = Piece{}
	g.score = 0
	g.lines = 0
	g.level = 1
	g.interval = baseInterval
}

// Start spawns the first piece and begins play
func (g *Game) Start() bool {
	if !g.Machine.Start() {
		return false
	}
	g.next = g.randomPiece()
	g.spawn()
	return true
}

func (g *Game) randomPiece() Piece {
	return newPiece(Kind(g.rng.Intn(kindCount)), spawnPosition)
}

func (g *Game) spawn() {
	g.current = g.next
	g.next = g.randomPiece()
	if !g.Valid(g.current) {
		g.End()
	}
}

// Valid reports whether every cell of p is on the board and empty
func (g *Game) Valid(p Piece) bool {
	for _, c := range p.Cells() {
		if !g.Free(c) {
			return false
		}
	}
	return true
}

// Free reports whether c is on the board and not occupied by a locked block
func (g *Game) Free(c game.Point) bool {
	if c.X < 0 || c.X >= Width || c.Y < 0 || c.Y >= Height {
		return false
	}
	return g.board[c.Y][c.X] == 0
}

// Step moves the current piece down one row, locking it when it cannot move
func (g *Game) Step() {
	if g.State() != game.Playing {
		return
	}

	moved := g.current.Moved(game.Down.Delta())
	if g.Valid(moved) {
		g.current = moved
		return
	}

	g.lock()
}

func (g *Game) lock() {
	for _, c := range g.current.Cells() {
		g.board[c.Y][c.X] = Cell(g.current.Kind) + 1
	}

	cleared := g.clearLines()
	if cleared > 0 {
		g.score += cleared * pointsPerLine * g.level
		g.lines += cleared
		g.level = g.lines/linesPerLevel + 1
		g.interval = baseInterval - time.Duration(g.level-1)*levelStep
		if g.interval < minInterval {
			g.interval = minInterval
		}
	}

	g.spawn()
}

// clearLines removes full rows scanning bottom-up and returns how many were removed
func (g *Game) clearLines() int {
	cleared := 0
	for y := Height - 1; y >= 0; {
		if !rowFull(g.board[y]) {
			y--
			continue
		}
		for row := y; row > 0; row-- {
			g.board[row] = g.board[row-1]
		}
		g.board[0] = [Width]Cell{}
		cleared++
	}
	return cleared
}

func rowFull(row [Width]Cell) bool {
	for _, c := range row {
		if c == 0 {
			return false
		}
	}
	return true
}

func (g *Game) shift(d game.Direction) bool {
	if g.State() != game.Playing {
		return false
	}
	moved := g.current.Moved(d.Delta())
	if !g.Valid(moved) {
		return false
	}
	g.current = moved
	return true
}

// MoveLeft shifts the piece one column left if possible
func (g *Game) MoveLeft() bool { return g.shift(game.Left) }

// MoveRight shifts the piece one column right if possible
func (g *Game) MoveRight() bool { return g.shift(game.Right) }

// SoftDrop moves the piece one row down if possible without locking it
func (g *Game) SoftDrop() bool { return g.shift(game.Down) }

// Rotate turns the piece clockwise if the result fits
func (g *Game) Rotate() bool {
	if g.State() != game.Playing {
		return false
	}
	rotated := g.current.Rotated()
	if !g.Valid(rotated) {
		return false
	}
	g.current = rotated
	return true
}

// HardDrop drops the piece to the bottom, scores one point per row and locks it
func (g *Game) HardDrop() int {
	if g.State() != game.Playing {
		return 0
	}
	dist := 0
	for g.Valid(g.current.Moved(game.Down.Delta())) {
		g.current = g.current.Moved(game.Down.Delta())
		dist++
	}
	g.score += dist
	g.lock()
	return dist
}

// Grid returns the board with the falling piece drawn in
func (g *Game) Grid() Board {
	grid := g.board
	if g.State() == game.Ready {
		return grid
	}
	for _, c := range g.current.Cells() {
		if c.X >= 0 && c.X < Width && c.Y >= 0 && c.Y < Height && grid[c.Y][c.X] == 0 {
			grid[c.Y][c.X] = Cell(g.current.Kind) + 1
		}
	}
	return grid
}

func (g *Game) Board() Board            { return g.board }
func (g *Game) Current() Piece          { return g.current }
func (g *Game) Next() Piece             { return g.next }
func (g *Game) Score() int              { return g.score }
func (g *Game) Lines() int              { return g.lines }
func (g *Game) Level() int              { return g.level }
func (g *Game) Interval() time.Duration { return g.interval }
