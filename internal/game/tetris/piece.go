package tetris

import "dailyvocab/internal/game"

// Kind identifies one of the seven tetrominoes
type Kind int

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L

	kindCount = 7
)

func (k Kind) String() string {
	return [...]string{"I", "O", "T", "S", "Z", "J", "L"}[k]
}

var shapes = [kindCount][]game.Point{
	I: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}},
	O: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	T: {{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	S: {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	Z: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	J: {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	L: {{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
}

// Piece is a tetromino placed at an offset on the board
type Piece struct {
	Kind   Kind
	Blocks []game.Point
	Pos    game.Point
}

func newPiece(kind Kind, pos game.Point) Piece {
	blocks := make([]game.Point, len(shapes[kind]))
	copy(blocks, shapes[kind])
	return Piece{Kind: kind, Blocks: blocks, Pos: pos}
}

// Cells returns the absolute board positions covered by the piece
func (p Piece) Cells() []game.Point {
	cells := make([]game.Point, len(p.Blocks))
	for i, b := range p.Blocks {
		cells[i] = b.Add(p.Pos)
	}
	return cells
}

// Moved returns a copy translated by d
func (p Piece) Moved(d game.Point) Piece {
	p.Pos = p.Pos.Add(d)
	return p
}

// Rotated returns a copy turned clockwise with (x, y) -> (-y, x); O never rotates
func (p Piece) Rotated() Piece {
	if p.Kind == O {
		return p
	}
	blocks := make([]game.Point, len(p.Blocks))
	for i, b := range p.Blocks {
		blocks[i] = game.Point{X: -b.Y, Y: b.X}
	}
	p.Blocks = blocks
	return p
}
