package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/practice"
	"dailyvocab/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const generateTimeout = 60 * time.Second

// Handler serves the JSON API
type Handler struct {
	BaseHandler
	userService     *service.UserService
	wordService     *service.WordService
	settingsService *service.SettingsService
	practiceService *service.PracticeService
	gameService     *service.GameService
	sessions        *sessionStore
}

// NewHandler creates a new API handler
func NewHandler(
	userService *service.UserService,
	wordService *service.WordService,
	settingsService *service.SettingsService,
	practiceService *service.PracticeService,
	gameService *service.GameService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		BaseHandler:     BaseHandler{Logger: logger},
		userService:     userService,
		wordService:     wordService,
		settingsService: settingsService,
		practiceService: practiceService,
		gameService:     gameService,
		sessions:        newSessionStore(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Use(h.userMiddleware)
		r.Get("/words/today", h.GetTodayWords)
		r.Post("/words/generate", h.GenerateWords)
		r.Get("/records", h.GetRecords)
		r.Get("/records/{date}", h.GetRecord)
		r.Get("/difficulty", h.GetDifficulty)
		r.Put("/difficulty", h.SetDifficulty)
		r.Get("/favorites", h.GetFavorites)
		r.Post("/practice", h.StartPractice)
		r.Get("/high-scores", h.GetHighScores)
	})
	r.Post("/practice/{sessionID}/answers", h.SubmitAnswer)
	r.Get("/words/{text}", h.GetWord)
}

type userIDKey struct{}

// userMiddleware parses the user id path parameter and registers the user
func (h *Handler) userMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		if err := h.userService.EnsureUserExists(userID, ""); err != nil {
			h.Logger.Error("failed to ensure user exists", zap.Int64("user_id", userID), zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to register user")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey{}).(int64)
	return id
}

// WordsResponse is a dated word list
type WordsResponse struct {
	Date  string        `json:"date"`
	Words []domain.Word `json:"words"`
}

// GetTodayWords handles GET /api/v1/users/{userID}/words/today
func (h *Handler) GetTodayWords(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	h.RespondJSON(w, http.StatusOK, WordsResponse{
		Date:  h.wordService.Today(),
		Words: h.wordService.GetTodayWords(userID),
	})
}

// GenerateWords handles POST /api/v1/users/{userID}/words/generate
func (h *Handler) GenerateWords(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	words := h.wordService.GenerateNewWords(ctx, userID)
	h.RespondJSON(w, http.StatusOK, WordsResponse{
		Date:  h.wordService.Today(),
		Words: words,
	})
}

// RecordsResponse lists cached days, newest first
type RecordsResponse struct {
	Records    []domain.WordRecord `json:"records"`
	Page       int                 `json:"page,omitempty"`
	TotalPages int                 `json:"totalPages,omitempty"`
}

// GetRecords handles GET /api/v1/users/{userID}/records
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		h.RespondJSON(w, http.StatusOK, RecordsResponse{Records: h.wordService.GetRecords(userID)})
		return
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		h.RespondError(w, http.StatusBadRequest, "invalid page parameter")
		return
	}

	records, totalPages := h.wordService.GetRecordsPage(userID, page)
	h.RespondJSON(w, http.StatusOK, RecordsResponse{
		Records:    records,
		Page:       page,
		TotalPages: totalPages,
	})
}

// GetRecord handles GET /api/v1/users/{userID}/records/{date}
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	date := chi.URLParam(r, "date")

	words, err := h.wordService.GetWordsByDate(userID, date)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid date, expected yyyy-MM-dd")
		return
	}

	h.RespondJSON(w, http.StatusOK, WordsResponse{Date: date, Words: words})
}

// DifficultyResponse describes a difficulty level
type DifficultyResponse struct {
	Level       domain.DifficultyLevel `json:"level"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
}

func newDifficultyResponse(level domain.DifficultyLevel) DifficultyResponse {
	return DifficultyResponse{
		Level:       level,
		Name:        level.DisplayName(),
		Description: level.Description(),
	}
}

// GetDifficulty handles GET /api/v1/users/{userID}/difficulty
func (h *Handler) GetDifficulty(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	h.RespondJSON(w, http.StatusOK, newDifficultyResponse(h.settingsService.Difficulty(userID)))
}

// SetDifficultyRequest represents a difficulty change
type SetDifficultyRequest struct {
	Level string `json:"level"`
}

// SetDifficulty handles PUT /api/v1/users/{userID}/difficulty
func (h *Handler) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req SetDifficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	level, err := domain.ParseDifficulty(req.Level)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.settingsService.SetDifficulty(userID, level); err != nil {
		h.Logger.Error("failed to set difficulty", zap.Int64("user_id", userID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to save difficulty")
		return
	}

	h.RespondJSON(w, http.StatusOK, newDifficultyResponse(level))
}

// GetFavorites handles GET /api/v1/users/{userID}/favorites
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	h.RespondJSON(w, http.StatusOK, map[string][]domain.Word{"words": h.wordService.Favorites(userID)})
}

// HighScoresResponse holds the best score of every game
type HighScoresResponse struct {
	Snake  int `json:"snake"`
	Tetris int `json:"tetris"`
}

// GetHighScores handles GET /api/v1/users/{userID}/high-scores
func (h *Handler) GetHighScores(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	h.RespondJSON(w, http.StatusOK, HighScoresResponse{
		Snake:  h.gameService.HighScore(userID, domain.GameSnake),
		Tetris: h.gameService.HighScore(userID, domain.GameTetris),
	})
}

// QuestionResponse is a masked word without its answer
type QuestionResponse struct {
	Masked       string `json:"masked"`
	Translation  string `json:"translation"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
}

// PracticeResponse is the state of a practice session
type PracticeResponse struct {
	SessionID uuid.UUID         `json:"sessionId"`
	Index     int               `json:"index"`
	Score     int               `json:"score"`
	Total     int               `json:"total"`
	Done      bool              `json:"done"`
	Current   *QuestionResponse `json:"current,omitempty"`
	Result    *practice.Result  `json:"result,omitempty"`
}

func newPracticeResponse(id uuid.UUID, s *practice.Session) PracticeResponse {
	resp := PracticeResponse{
		SessionID: id,
		Index:     s.Index(),
		Score:     s.Score(),
		Total:     s.Total(),
		Done:      s.Done(),
	}
	if current, ok := s.Current(); ok {
		resp.Current = &QuestionResponse{
			Masked:       current.Masked,
			Translation:  current.Word.Translation,
			PartOfSpeech: current.Word.PartOfSpeech,
		}
	}
	return resp
}

// StartPractice handles POST /api/v1/users/{userID}/practice
func (h *Handler) StartPractice(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	session := h.practiceService.NewSession(userID)
	if session.Total() == 0 {
		h.RespondError(w, http.StatusUnprocessableEntity, "no words to practice")
		return
	}

	id := h.sessions.add(userID, session)
	h.Logger.Info("practice session started",
		zap.Int64("user_id", userID),
		zap.String("session_id", id.String()),
		zap.Int("words", session.Total()),
	)

	h.RespondJSON(w, http.StatusCreated, newPracticeResponse(id, session))
}

// SubmitAnswerRequest is a typed answer or a skip
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
	Skip   bool   `json:"skip"`
}

// SubmitAnswer handles POST /api/v1/practice/{sessionID}/answers
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Skip && strings.TrimSpace(req.Answer) == "" {
		h.RespondError(w, http.StatusBadRequest, "answer cannot be empty")
		return
	}

	entry, ok := h.sessions.get(id)
	if !ok {
		h.RespondError(w, http.StatusNotFound, "practice session not found")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	var result practice.Result
	if req.Skip {
		result, ok = entry.session.Skip()
	} else {
		result, ok = entry.session.Submit(req.Answer)
	}
	if !ok {
		h.RespondError(w, http.StatusConflict, "practice session finished")
		return
	}

	resp := newPracticeResponse(id, entry.session)
	resp.Result = &result
	h.RespondJSON(w, http.StatusOK, resp)
}

// WordResponse is a word with its related words
type WordResponse struct {
	Word    domain.Word          `json:"word"`
	Related []domain.RelatedWord `json:"related"`
}

// GetWord handles GET /api/v1/words/{text}
func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(chi.URLParam(r, "text"))
	if text == "" {
		h.RespondError(w, http.StatusBadRequest, "word cannot be empty")
		return
	}

	var userID int64
	if userStr := r.URL.Query().Get("user"); userStr != "" {
		parsed, err := strconv.ParseInt(userStr, 10, 64)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid user parameter")
			return
		}
		userID = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	word := h.wordService.WordDetails(ctx, userID, text)
	h.RespondJSON(w, http.StatusOK, WordResponse{
		Word:    word,
		Related: h.wordService.RelatedWords(text),
	})
}
