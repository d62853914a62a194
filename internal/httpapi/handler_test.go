package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/service"
	"dailyvocab/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router    http.Handler
	handler   *Handler
	generator *testutil.MockWordGenerator
	users     *testutil.MockUserRepository
	games     *service.GameService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := testutil.NewTestLogger()
	prefRepo := testutil.NewMemoryPreferenceRepository()
	users := new(testutil.MockUserRepository)
	gen := new(testutil.MockWordGenerator)

	userService := service.NewUserService(users)
	settingsService := service.NewSettingsService(prefRepo, logger)
	wordService := service.NewWordService(prefRepo, settingsService, gen, time.UTC, logger)
	practiceService := service.NewPracticeService(wordService, logger)
	gameService := service.NewGameService(prefRepo, logger)

	h := NewHandler(userService, wordService, settingsService, practiceService, gameService, logger)

	return &testAPI{
		router:    NewRouter(h, logger),
		handler:   h,
		generator: gen,
		users:     users,
		games:     gameService,
	}
}

func (a *testAPI) allowUsers() {
	a.users.On("EnsureUserExists", mock.Anything, "").Return(nil)
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestRequestIDIsPropagated(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestUserRoutes_InvalidUser(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/users/abc/words/today", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	api.users.AssertNotCalled(t, "EnsureUserExists", mock.Anything, mock.Anything)
}

func TestUserRoutes_RegistrationError(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("EnsureUserExists", int64(1), "").Return(errors.New("db down"))

	rec := api.do(t, http.MethodGet, "/api/v1/users/1/words/today", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetTodayWords_Defaults(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	rec := api.do(t, http.MethodGet, "/api/v1/users/1/words/today", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[WordsResponse](t, rec)
	assert.Equal(t, api.handler.wordService.Today(), resp.Date)
	require.Len(t, resp.Words, 5)
	assert.Equal(t, "explore", resp.Words[0].Text)
	api.users.AssertCalled(t, "EnsureUserExists", int64(1), "")
}

func TestGenerateWordsAndRecords(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()
	api.generator.On("GenerateDailyWords", mock.Anything, domain.HighSchool).
		Return(testutil.NewTestWords("apple", "banana"))

	rec := api.do(t, http.MethodPost, "/api/v1/users/1/words/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	generated := decode[WordsResponse](t, rec)
	assert.Len(t, generated.Words, 2)

	rec = api.do(t, http.MethodGet, "/api/v1/users/1/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[RecordsResponse](t, rec)
	require.Len(t, all.Records, 1)
	assert.Equal(t, generated.Date, all.Records[0].Date)
	assert.Zero(t, all.TotalPages)

	rec = api.do(t, http.MethodGet, "/api/v1/users/1/records?page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	paged := decode[RecordsResponse](t, rec)
	assert.Equal(t, 1, paged.Page)
	assert.Equal(t, 1, paged.TotalPages)
	assert.Len(t, paged.Records, 1)

	rec = api.do(t, http.MethodGet, "/api/v1/users/1/records/"+generated.Date, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	day := decode[WordsResponse](t, rec)
	assert.Equal(t, []string{"apple", "banana"}, []string{day.Words[0].Text, day.Words[1].Text})

	api.generator.AssertExpectations(t)
}

func TestRecords_BadInput(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	tests := []struct {
		name string
		path string
	}{
		{name: "page is not a number", path: "/api/v1/users/1/records?page=x"},
		{name: "page below one", path: "/api/v1/users/1/records?page=0"},
		{name: "malformed date", path: "/api/v1/users/1/records/2024-13-40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRecordByDate_Missing(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	rec := api.do(t, http.MethodGet, "/api/v1/users/1/records/2020-01-01", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[WordsResponse](t, rec).Words)
}

func TestDifficulty(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	rec := api.do(t, http.MethodGet, "/api/v1/users/1/difficulty", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.HighSchool, decode[DifficultyResponse](t, rec).Level)

	rec = api.do(t, http.MethodPut, "/api/v1/users/1/difficulty", SetDifficultyRequest{Level: "university"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.University, decode[DifficultyResponse](t, rec).Level)

	rec = api.do(t, http.MethodGet, "/api/v1/users/1/difficulty", nil)
	assert.Equal(t, domain.University, decode[DifficultyResponse](t, rec).Level)

	rec = api.do(t, http.MethodPut, "/api/v1/users/1/difficulty", SetDifficultyRequest{Level: "expert"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/1/difficulty", bytes.NewBufferString("{"))
	badBody := httptest.NewRecorder()
	api.router.ServeHTTP(badBody, req)
	assert.Equal(t, http.StatusBadRequest, badBody.Code)
}

func TestPracticeFlow(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	rec := api.do(t, http.MethodPost, "/api/v1/users/1/practice", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	started := decode[PracticeResponse](t, rec)
	assert.Equal(t, 5, started.Total)
	require.NotNil(t, started.Current)
	assert.Contains(t, started.Current.Masked, "_")
	assert.NotContains(t, rec.Body.String(), `"answer"`)

	entry, ok := api.handler.sessions.get(started.SessionID)
	require.True(t, ok)
	current, _ := entry.session.Current()

	path := "/api/v1/practice/" + started.SessionID.String() + "/answers"

	rec = api.do(t, http.MethodPost, path, SubmitAnswerRequest{Answer: current.Answer})
	require.Equal(t, http.StatusOK, rec.Code)
	answered := decode[PracticeResponse](t, rec)
	require.NotNil(t, answered.Result)
	assert.True(t, answered.Result.Correct)
	assert.Equal(t, 1, answered.Score)
	assert.Equal(t, 1, answered.Index)

	rec = api.do(t, http.MethodPost, path, SubmitAnswerRequest{Answer: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 1; i < started.Total; i++ {
		rec = api.do(t, http.MethodPost, path, SubmitAnswerRequest{Skip: true})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	finished := decode[PracticeResponse](t, rec)
	assert.True(t, finished.Done)
	assert.Nil(t, finished.Current)
	assert.Equal(t, 1, finished.Score)
	assert.False(t, finished.Result.Correct)

	rec = api.do(t, http.MethodPost, path, SubmitAnswerRequest{Skip: true})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitAnswer_UnknownSession(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/practice/"+uuid.New().String()+"/answers", SubmitAnswerRequest{Answer: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/v1/practice/not-a-uuid/answers", SubmitAnswerRequest{Answer: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHighScores(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	_, err := api.games.RecordScore(1, domain.GameTetris, 900)
	require.NoError(t, err)

	rec := api.do(t, http.MethodGet, "/api/v1/users/1/high-scores", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HighScoresResponse{Snake: 0, Tetris: 900}, decode[HighScoresResponse](t, rec))
}

func TestFavorites(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	require.NoError(t, api.handler.wordService.AddFavorite(1, testutil.NewTestWord("apple", "苹果")))

	rec := api.do(t, http.MethodGet, "/api/v1/users/1/favorites", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[map[string][]domain.Word](t, rec)
	require.Len(t, resp["words"], 1)
	assert.Equal(t, "apple", resp["words"][0].Text)
}

func TestGetWord(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		setupMock       func(*testutil.MockWordGenerator)
		expectedStatus  int
		expectedTrans   string
		expectedRelated string
	}{
		{
			name: "remote lookup",
			path: "/api/v1/words/serendipity",
			setupMock: func(m *testutil.MockWordGenerator) {
				w := testutil.NewTestWord("serendipity", "意外发现")
				m.On("WordDetails", mock.Anything, "serendipity").Return(&w, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedTrans:   "意外发现",
			expectedRelated: "related",
		},
		{
			name: "lookup failure yields placeholder",
			path: "/api/v1/words/explore",
			setupMock: func(m *testutil.MockWordGenerator) {
				m.On("WordDetails", mock.Anything, "explore").Return(nil, errors.New("timeout"))
			},
			expectedStatus:  http.StatusOK,
			expectedTrans:   "获取失败",
			expectedRelated: "discovery",
		},
		{
			name:           "invalid user parameter",
			path:           "/api/v1/words/explore?user=abc",
			setupMock:      func(m *testutil.MockWordGenerator) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			tt.setupMock(api.generator)

			rec := api.do(t, http.MethodGet, tt.path, nil)

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			resp := decode[WordResponse](t, rec)
			assert.Equal(t, tt.expectedTrans, resp.Word.Translation)
			require.NotEmpty(t, resp.Related)
			assert.Equal(t, tt.expectedRelated, resp.Related[0].Word)
			api.generator.AssertExpectations(t)
		})
	}
}

func TestGetWord_PrefersUserCache(t *testing.T) {
	api := newTestAPI(t)
	api.allowUsers()

	// Caches the default list for user 1
	api.do(t, http.MethodGet, "/api/v1/users/1/words/today", nil)

	rec := api.do(t, http.MethodGet, "/api/v1/words/Explore?user=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[WordResponse](t, rec)
	assert.Equal(t, "explore", resp.Word.Text)
	api.generator.AssertNotCalled(t, "WordDetails", mock.Anything, mock.Anything)
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(testutil.NewTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("too large")))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSessionStore_Expiry(t *testing.T) {
	store := newSessionStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	id := store.add(1, nil)
	_, ok := store.get(id)
	assert.True(t, ok)

	now = now.Add(sessionTTL + time.Second)
	_, ok = store.get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.len())

	store.add(1, nil)
	now = now.Add(sessionTTL + time.Second)
	store.add(2, nil)
	assert.Equal(t, 1, store.len(), "expired sessions are pruned on add")
}
