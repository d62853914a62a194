package game

import "fmt"

// State is the lifecycle phase shared by all games
type State int

const (
	Ready State = iota
	Playing
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Playing:
		return "PLAYING"
	case Paused:
		return "PAUSED"
	case GameOver:
		return "GAME_OVER"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Machine guards the READY -> PLAYING <-> PAUSED -> GAME_OVER -> READY transitions
type Machine struct {
	state State
}

func (m *Machine) State() State { return m.state }

// Start moves a ready game into play
func (m *Machine) Start() bool {
	if m.state != Ready {
		return false
	}
	m.state = Playing
	return true
}

// Pause suspends a running game
func (m *Machine) Pause() bool {
	if m.state != Playing {
		return false
	}
	m.state = Paused
	return true
}

// Resume continues a paused game
func (m *Machine) Resume() bool {
	if m.state != Paused {
		return false
	}
	m.state = Playing
	return true
}

// End finishes a running or paused game
func (m *Machine) End() bool {
	if m.state != Playing && m.state != Paused {
		return false
	}
	m.state = GameOver
	return true
}

// Reset returns the machine to Ready from any state
func (m *Machine) Reset() {
	m.state = Ready
}

// Point is a cell position; y grows downwards
type Point struct {
	X, Y int
}

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is a movement on the grid
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the unit step of the direction
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
