package handler

import (
	"fmt"
	"sync"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/practice"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var btnPracticeRestart = tele.Btn{
	Unique: "practice_restart",
	Text:   "🔄 再来一轮",
}

func practiceMarkup(s *practice.Session) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	if s.Done() {
		markup.Inline(
			markup.Row(btnPracticeRestart, btnToday),
			markup.Row(btnMainMenu),
		)
		return markup
	}
	markup.Inline(
		markup.Row(btnPracticeSkip, btnCancel),
	)
	return markup
}

// practiceState guards one user's session; telebot handles updates concurrently
type practiceState struct {
	mu      sync.Mutex
	session *practice.Session
}

// practiceStep is what a move rendered while the session lock was held
type practiceStep struct {
	text     string
	markup   *tele.ReplyMarkup
	advanced bool
	done     bool
	score    int
	total    int
}

// advance applies move and renders the outcome under the session lock
func (ps *practiceState) advance(move func(*practice.Session) (practice.Result, bool)) practiceStep {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	s := ps.session
	result, ok := move(s)
	if !ok {
		return practiceStep{text: renderPracticeResult(s), markup: practiceMarkup(s)}
	}

	return practiceStep{
		text:     fmt.Sprintf("%s\n\n%s", renderAnswer(result), renderPractice(s)),
		markup:   practiceMarkup(s),
		advanced: true,
		done:     s.Done(),
		score:    s.Score(),
		total:    s.Total(),
	}
}

// practiceSession returns the running session of the user
func (h *Handler) practiceSession(userID int64) (*practiceState, bool) {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()
	ps, ok := h.practices[userID]
	return ps, ok
}

// handlePractice starts a new practice session
func (h *Handler) handlePractice(c tele.Context) error {
	userID := c.Sender().ID

	h.stopGame(userID)
	s := h.practiceService.NewSession(userID)
	if s.Total() == 0 {
		h.ResetState(userID)
		return h.reply(c, renderPracticeResult(s), backMarkup())
	}

	text, markup := renderPractice(s), practiceMarkup(s)

	h.stateMux.Lock()
	h.practices[userID] = &practiceState{session: s}
	h.stateMux.Unlock()
	h.SetState(userID, &domain.StateData{State: domain.StatePracticing})

	h.logger.Info("Practice started",
		zap.Int64("user_id", userID),
		zap.Int("words", s.Total()),
	)

	return h.reply(c, text, markup)
}

// handlePracticeRestart redraws words for a finished session
func (h *Handler) handlePracticeRestart(c tele.Context) error {
	userID := c.Sender().ID

	ps, ok := h.practiceSession(userID)
	if !ok {
		return h.handlePractice(c)
	}

	ps.mu.Lock()
	ps.session.Restart()
	text, markup := renderPractice(ps.session), practiceMarkup(ps.session)
	ps.mu.Unlock()

	h.SetState(userID, &domain.StateData{State: domain.StatePracticing})
	return h.reply(c, text, markup)
}

// handlePracticeAnswer checks a typed answer
func (h *Handler) handlePracticeAnswer(c tele.Context, text string) error {
	userID := c.Sender().ID

	ps, ok := h.practiceSession(userID)
	if !ok {
		h.ResetState(userID)
		return c.Send(mainMenuText, mainMenuMarkup())
	}

	step := ps.advance(func(s *practice.Session) (practice.Result, bool) {
		return s.Submit(text)
	})
	if !step.advanced {
		return c.Send(step.text, step.markup)
	}

	return h.sendPracticeStep(c, userID, step)
}

// handlePracticeSkip reveals the answer and moves on
func (h *Handler) handlePracticeSkip(c tele.Context) error {
	userID := c.Sender().ID

	ps, ok := h.practiceSession(userID)
	if !ok {
		return alert(c, "练习已结束")
	}

	step := ps.advance((*practice.Session).Skip)
	if !step.advanced {
		return h.reply(c, step.text, step.markup)
	}

	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return h.sendPracticeStep(c, userID, step)
}

func (h *Handler) sendPracticeStep(c tele.Context, userID int64, step practiceStep) error {
	if step.done {
		h.SetState(userID, &domain.StateData{State: domain.StateIdle})
		h.logger.Info("Practice finished",
			zap.Int64("user_id", userID),
			zap.Int("score", step.score),
			zap.Int("total", step.total),
		)
	}

	return c.Send(step.text, step.markup)
}
