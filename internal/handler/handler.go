package handler

import (
	"context"
	"sync"
	"time"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Speaker turns text into a local audio file
type Speaker interface {
	Speak(ctx context.Context, text string) (string, error)
}

// Editor edits previously sent messages; *tele.Bot satisfies it
type Editor interface {
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot             *tele.Bot
	editor          Editor
	userService     *service.UserService
	wordService     *service.WordService
	settingsService *service.SettingsService
	practiceService *service.PracticeService
	gameService     *service.GameService
	speaker         Speaker
	minTick         time.Duration
	logger          *zap.Logger

	// User states (in-memory state machine)
	states    map[int64]*domain.StateData
	practices map[int64]*practiceState
	games     map[int64]*gameSession
	stateMux  sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	userService *service.UserService,
	wordService *service.WordService,
	settingsService *service.SettingsService,
	practiceService *service.PracticeService,
	gameService *service.GameService,
	speaker Speaker,
	minTick time.Duration,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:             bot,
		userService:     userService,
		wordService:     wordService,
		settingsService: settingsService,
		practiceService: practiceService,
		gameService:     gameService,
		speaker:         speaker,
		minTick:         minTick,
		logger:          logger,
		states:          make(map[int64]*domain.StateData),
		practices:       make(map[int64]*practiceState),
		games:           make(map[int64]*gameSession),
	}
	if bot != nil {
		h.editor = bot
	}
	return h
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/today", h.handleToday)
	h.bot.Handle("/practice", h.handlePractice)
	h.bot.Handle("/games", h.handleGames)
	h.bot.Handle("/settings", h.handleSettings)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnMainMenu, h.handleStart)
	h.bot.Handle(&btnToday, h.handleToday)
	h.bot.Handle(&btnGenerate, h.handleGenerate)
	h.bot.Handle(&btnViewDays, h.handleViewDays)
	h.bot.Handle(&btnFavorites, h.handleFavorites)
	h.bot.Handle(&btnPractice, h.handlePractice)
	h.bot.Handle(&btnPracticeSkip, h.handlePracticeSkip)
	h.bot.Handle(&btnPracticeRestart, h.handlePracticeRestart)
	h.bot.Handle(&btnSettings, h.handleSettings)
	h.bot.Handle(&btnClearCache, h.handleClearCache)
	h.bot.Handle(&btnGames, h.handleGames)
	h.bot.Handle(&btnSnake, h.handleSnake)
	h.bot.Handle(&btnTetris, h.handleTetris)
	h.bot.Handle(&btnCancel, h.handleCancel)
	for _, btn := range gameControlButtons() {
		h.bot.Handle(btn, h.handleGameControl)
	}

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state and drops any practice session
func (h *Handler) ResetState(userID int64) {
	h.stateMux.Lock()
	delete(h.practices, userID)
	h.stateMux.Unlock()

	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Shutdown stops every running game loop
func (h *Handler) Shutdown() {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()

	for userID, sess := range h.games {
		sess.stop()
		delete(h.games, userID)
	}
}

// Inline keyboard buttons
var (
	btnMainMenu = tele.Btn{
		Unique: "home",
		Text:   "🏠 主菜单",
	}
	btnToday = tele.Btn{
		Unique: "today",
		Text:   "📚 今日单词",
	}
	btnGenerate = tele.Btn{
		Unique: "generate",
		Text:   "✨ 生成新单词",
	}
	btnViewDays = tele.Btn{
		Unique: "view_days",
		Text:   "📅 单词库",
	}
	btnFavorites = tele.Btn{
		Unique: "favorites",
		Text:   "⭐ 收藏",
	}
	btnPractice = tele.Btn{
		Unique: "practice",
		Text:   "✏️ 练习",
	}
	btnPracticeSkip = tele.Btn{
		Unique: "practice_skip",
		Text:   "⏭ 跳过",
	}
	btnSettings = tele.Btn{
		Unique: "settings",
		Text:   "⚙️ 设置",
	}
	btnClearCache = tele.Btn{
		Unique: "clear_cache",
		Text:   "🗑 清除单词缓存",
	}
	btnGames = tele.Btn{
		Unique: "games",
		Text:   "🎮 游戏",
	}
	btnSnake = tele.Btn{
		Unique: "snake",
		Text:   "🐍 贪吃蛇",
	}
	btnTetris = tele.Btn{
		Unique: "tetris",
		Text:   "🧱 俄罗斯方块",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ 结束",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnToday, btnGenerate),
		menu.Row(btnViewDays, btnFavorites),
		menu.Row(btnPractice, btnGames),
		menu.Row(btnSettings),
	)
	return menu
}

// backMarkup returns a keyboard with a single main menu button
func backMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnMainMenu))
	return menu
}

const mainMenuText = "🏠 主菜单\n\n请选择："

// reply edits the callback message when there is one, otherwise sends a new message
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// alert answers a callback with a popup, or sends a message for commands
func alert(c tele.Context, text string) error {
	if c.Callback() == nil {
		return c.Send(text)
	}
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// userName returns the best available display name of the sender
func userName(u *tele.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}
