package handler

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/game"
	"dailyvocab/internal/game/snake"
	"dailyvocab/internal/game/tetris"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Game control actions
const (
	actionStart   = "g_start"
	actionUp      = "g_up"
	actionDown    = "g_down"
	actionLeft    = "g_left"
	actionRight   = "g_right"
	actionRotate  = "g_rot"
	actionDrop    = "g_drop"
	actionPause   = "g_pause"
	actionResume  = "g_resume"
	actionRestart = "g_restart"
	actionQuit    = "g_quit"
)

var (
	btnGameStart   = tele.Btn{Unique: actionStart, Text: "▶️ 开始"}
	btnGameUp      = tele.Btn{Unique: actionUp, Text: "⬆️"}
	btnGameDown    = tele.Btn{Unique: actionDown, Text: "⬇️"}
	btnGameLeft    = tele.Btn{Unique: actionLeft, Text: "⬅️"}
	btnGameRight   = tele.Btn{Unique: actionRight, Text: "➡️"}
	btnGameRotate  = tele.Btn{Unique: actionRotate, Text: "🔄"}
	btnGameDrop    = tele.Btn{Unique: actionDrop, Text: "⏬"}
	btnGamePause   = tele.Btn{Unique: actionPause, Text: "⏸ 暂停"}
	btnGameResume  = tele.Btn{Unique: actionResume, Text: "▶️ 继续"}
	btnGameRestart = tele.Btn{Unique: actionRestart, Text: "🔁 重新开始"}
	btnGameQuit    = tele.Btn{Unique: actionQuit, Text: "❌ 退出"}
)

// gameActions is the set of control uniques
var gameActions = map[string]struct{}{
	actionStart:   {},
	actionUp:      {},
	actionDown:    {},
	actionLeft:    {},
	actionRight:   {},
	actionRotate:  {},
	actionDrop:    {},
	actionPause:   {},
	actionResume:  {},
	actionRestart: {},
	actionQuit:    {},
}

// gameControlButtons returns every control button for registration
func gameControlButtons() []*tele.Btn {
	return []*tele.Btn{
		&btnGameStart, &btnGameUp, &btnGameDown, &btnGameLeft, &btnGameRight,
		&btnGameRotate, &btnGameDrop, &btnGamePause, &btnGameResume,
		&btnGameRestart, &btnGameQuit,
	}
}

// gameSession is one running game bound to a chat message
type gameSession struct {
	mu        sync.Mutex
	kind      domain.GameKind
	snake     *snake.Game
	tetris    *tetris.Game
	highScore int
	msg       tele.Editable
	running   bool
	cancel    context.CancelFunc
}

func newGameSession(kind domain.GameKind, highScore int, rng *rand.Rand) *gameSession {
	sess := &gameSession{kind: kind, highScore: highScore}
	switch kind {
	case domain.GameSnake:
		sess.snake = snake.New(snake.MinDifficulty, rng)
	default:
		sess.tetris = tetris.New(rng)
	}
	return sess
}

// engine returns the simulation of the session; callers hold mu
func (s *gameSession) engine() game.Engine {
	if s.snake != nil {
		return s.snake
	}
	return s.tetris
}

// stop cancels the game loop if one is running
func (s *gameSession) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// apply performs a control action and reports whether anything changed; callers hold mu
func (s *gameSession) apply(action string) bool {
	switch action {
	case actionStart:
		if s.snake != nil {
			return s.snake.Start()
		}
		return s.tetris.Start()
	case actionPause:
		if s.snake != nil {
			return s.snake.Pause()
		}
		return s.tetris.Pause()
	case actionResume:
		if s.snake != nil {
			return s.snake.Resume()
		}
		return s.tetris.Resume()
	case actionRestart:
		if s.snake != nil {
			s.snake.Reset()
			return s.snake.Start()
		}
		s.tetris.Reset()
		return s.tetris.Start()
	}

	if s.engine().State() != game.Playing {
		return false
	}

	if s.snake != nil {
		switch action {
		case actionUp:
			return s.snake.Turn(game.Up)
		case actionDown:
			return s.snake.Turn(game.Down)
		case actionLeft:
			return s.snake.Turn(game.Left)
		case actionRight:
			return s.snake.Turn(game.Right)
		}
		return false
	}

	switch action {
	case actionLeft:
		return s.tetris.MoveLeft()
	case actionRight:
		return s.tetris.MoveRight()
	case actionDown:
		return s.tetris.SoftDrop()
	case actionRotate:
		return s.tetris.Rotate()
	case actionDrop:
		s.tetris.HardDrop()
		return true
	}
	return false
}

// render draws the board; callers hold mu
func (s *gameSession) render() string {
	if s.snake != nil {
		return renderSnake(s.snake, s.highScore)
	}
	return renderTetris(s.tetris, s.highScore)
}

// markup returns the controls for the current state; callers hold mu
func (s *gameSession) markup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	switch s.engine().State() {
	case game.Ready:
		rows = append(rows, markup.Row(btnGameStart))
		if s.snake != nil {
			rows = append(rows, s.snakeDifficultyRow(markup))
		}
	case game.Playing:
		if s.snake != nil {
			rows = append(rows,
				markup.Row(btnGameUp),
				markup.Row(btnGameLeft, btnGameDown, btnGameRight),
			)
		} else {
			rows = append(rows,
				markup.Row(btnGameLeft, btnGameRotate, btnGameRight),
				markup.Row(btnGameDown, btnGameDrop),
			)
		}
		rows = append(rows, markup.Row(btnGamePause))
	case game.Paused:
		rows = append(rows, markup.Row(btnGameResume, btnGameRestart))
	case game.GameOver:
		rows = append(rows, markup.Row(btnGameRestart))
		if s.snake != nil {
			rows = append(rows, s.snakeDifficultyRow(markup))
		}
	}

	rows = append(rows, markup.Row(btnGameQuit))
	markup.Inline(rows...)
	return markup
}

func (s *gameSession) snakeDifficultyRow(markup *tele.ReplyMarkup) tele.Row {
	row := tele.Row{}
	for d := snake.MinDifficulty; d <= snake.MaxDifficulty; d++ {
		label := "难度 " + strconv.Itoa(d)
		if d == s.snake.Difficulty() {
			label = "✅ " + label
		}
		row = append(row, markup.Data(label, "snake_d_"+strconv.Itoa(d)))
	}
	return row
}

// activeGame returns the running game of the user
func (h *Handler) activeGame(userID int64) (*gameSession, bool) {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()
	sess, ok := h.games[userID]
	return sess, ok
}

// stopGame cancels and forgets the user's game
func (h *Handler) stopGame(userID int64) {
	h.stateMux.Lock()
	sess, ok := h.games[userID]
	delete(h.games, userID)
	h.stateMux.Unlock()

	if ok {
		sess.stop()
	}
}

// handleGames shows the game picker
func (h *Handler) handleGames(c tele.Context) error {
	userID := c.Sender().ID

	h.stopGame(userID)
	h.ResetState(userID)

	text := "🎮 游戏\n\n" +
		"🐍 贪吃蛇  最高 " + strconv.Itoa(h.gameService.HighScore(userID, domain.GameSnake)) + "\n" +
		"🧱 俄罗斯方块  最高 " + strconv.Itoa(h.gameService.HighScore(userID, domain.GameTetris))

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnSnake, btnTetris),
		markup.Row(btnMainMenu),
	)
	return h.reply(c, text, markup)
}

// handleSnake opens a new snake game
func (h *Handler) handleSnake(c tele.Context) error {
	return h.openGame(c, domain.GameSnake)
}

// handleTetris opens a new tetris game
func (h *Handler) handleTetris(c tele.Context) error {
	return h.openGame(c, domain.GameTetris)
}

func (h *Handler) openGame(c tele.Context, kind domain.GameKind) error {
	userID := c.Sender().ID

	h.stopGame(userID)
	h.ResetState(userID)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sess := newGameSession(kind, h.gameService.HighScore(userID, kind), rng)
	if msg := c.Message(); msg != nil {
		sess.msg = msg
	}

	h.stateMux.Lock()
	h.games[userID] = sess
	h.stateMux.Unlock()
	h.SetState(userID, &domain.StateData{State: domain.StatePlaying, Game: kind})

	h.logger.Info("Game opened",
		zap.Int64("user_id", userID),
		zap.String("game", string(kind)),
	)

	sess.mu.Lock()
	text, markup := sess.render(), sess.markup()
	sess.mu.Unlock()

	return h.reply(c, text, markup)
}

// handleGameControl handles the static game control buttons
func (h *Handler) handleGameControl(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}
	return h.runGameAction(c, callback.Unique)
}

func (h *Handler) runGameAction(c tele.Context, action string) error {
	userID := c.Sender().ID

	sess, ok := h.activeGame(userID)
	if !ok {
		return alert(c, "游戏已结束")
	}

	if action == actionQuit {
		h.stopGame(userID)
		return h.handleGames(c)
	}

	sess.mu.Lock()
	if msg := c.Message(); msg != nil {
		sess.msg = msg
	}
	changed := sess.apply(action)
	if changed && sess.engine().State() == game.Playing {
		h.startLoop(userID, sess)
	}
	text, markup := sess.render(), sess.markup()
	sess.mu.Unlock()

	if !changed {
		return c.Respond()
	}
	return h.reply(c, text, markup)
}

// handleSnakeDifficulty changes the snake speed between rounds
func (h *Handler) handleSnakeDifficulty(c tele.Context, raw string) error {
	userID := c.Sender().ID

	sess, ok := h.activeGame(userID)
	if !ok || sess.snake == nil {
		return alert(c, "游戏已结束")
	}

	d, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "未知的难度"})
	}

	sess.mu.Lock()
	changed := d != sess.snake.Difficulty() && sess.snake.SetDifficulty(d)
	text, markup := sess.render(), sess.markup()
	sess.mu.Unlock()

	if !changed {
		return c.Respond()
	}
	return h.reply(c, text, markup)
}

// startLoop launches the tick goroutine unless one is running; callers hold sess.mu
func (h *Handler) startLoop(userID int64, sess *gameSession) {
	if sess.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess.running = true
	sess.cancel = cancel
	loop := game.NewLoop(sess.engine(), &sess.mu, h.minTick, func(game.State) {
		h.drawFrame(userID, sess)
	})

	go func() {
		defer cancel()
		for {
			if loop.Run(ctx) == game.GameOver {
				h.finishGame(userID, sess)
			}

			sess.mu.Lock()
			// A restart may land between Run returning and this check
			if ctx.Err() != nil || sess.engine().State() != game.Playing {
				sess.running = false
				sess.mu.Unlock()
				return
			}
			sess.mu.Unlock()
		}
	}()
}

// drawFrame edits the game message with the current board
func (h *Handler) drawFrame(userID int64, sess *gameSession) {
	sess.mu.Lock()
	msg := sess.msg
	text, markup := sess.render(), sess.markup()
	sess.mu.Unlock()

	if msg == nil || h.editor == nil {
		return
	}
	if _, err := h.editor.Edit(msg, text, markup); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Failed to draw game frame", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// finishGame stores the final score and shows the result
func (h *Handler) finishGame(userID int64, sess *gameSession) {
	sess.mu.Lock()
	kind, score := sess.kind, sess.engine().Score()
	sess.mu.Unlock()

	best, err := h.gameService.RecordScore(userID, kind, score)
	if err != nil {
		h.logger.Error("Failed to record score", zap.Error(err), zap.Int64("user_id", userID))
	}

	sess.mu.Lock()
	if best {
		sess.highScore = score
	}
	msg := sess.msg
	text, markup := sess.render(), sess.markup()
	sess.mu.Unlock()

	if best {
		text += "\n🏆 新纪录！"
	}

	h.logger.Info("Game over",
		zap.Int64("user_id", userID),
		zap.String("game", string(kind)),
		zap.Int("score", score),
		zap.Bool("high_score", best),
	)

	if msg == nil || h.editor == nil {
		return
	}
	if _, err := h.editor.Edit(msg, text, markup); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Failed to draw final frame", zap.Int64("user_id", userID), zap.Error(err))
	}
}
