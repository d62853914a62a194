package game

import (
	"context"
	"sync"
	"time"
)

// Engine is a fixed-tick simulation
type Engine interface {
	State() State
	Step()
	Interval() time.Duration
	Score() int
}

// Loop advances an engine at its own pace until the game ends or ctx is cancelled
type Loop struct {
	engine      Engine
	mu          sync.Locker
	minInterval time.Duration
	onFrame     func(State)
}

// NewLoop creates a loop; mu guards the engine against concurrent player input
func NewLoop(engine Engine, mu sync.Locker, minInterval time.Duration, onFrame func(State)) *Loop {
	return &Loop{
		engine:      engine,
		mu:          mu,
		minInterval: minInterval,
		onFrame:     onFrame,
	}
}

// Run sleeps then steps, calling onFrame after every tick.
// A paused engine keeps the loop alive without stepping.
func (l *Loop) Run(ctx context.Context) State {
	for {
		l.mu.Lock()
		interval := l.engine.Interval()
		l.mu.Unlock()

		if interval < l.minInterval {
			interval = l.minInterval
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return l.state()
		case <-timer.C:
		}

		l.mu.Lock()
		if ctx.Err() != nil {
			l.mu.Unlock()
			return l.state()
		}
		stepped := false
		if l.engine.State() == Playing {
			l.engine.Step()
			stepped = true
		}
		state := l.engine.State()
		l.mu.Unlock()

		if stepped && l.onFrame != nil {
			l.onFrame(state)
		}

		if state == GameOver || state == Ready {
			return state
		}
	}
}

func (l *Loop) state() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.State()
}
