package middleware

import (
	"errors"
	"testing"

	"dailyvocab/internal/service"
	"dailyvocab/internal/testutil"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

// fakeContext implements only what the middleware touches
type fakeContext struct {
	tele.Context
	sender   *tele.User
	callback *tele.Callback
	sent     []interface{}
}

func (c *fakeContext) Sender() *tele.User       { return c.sender }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }
func (c *fakeContext) Text() string             { return "" }

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	for _, r := range resp {
		c.sent = append(c.sent, r.Text)
	}
	return nil
}

func TestUserMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		sender     *tele.User
		callback   *tele.Callback
		setupMock  func(*testutil.MockUserRepository)
		expectNext bool
		expectSent int
	}{
		{
			name:   "registers sender with username",
			sender: &tele.User{ID: 1, Username: "alice", FirstName: "Alice"},
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", int64(1), "alice").Return(nil)
			},
			expectNext: true,
		},
		{
			name:   "falls back to first name",
			sender: &tele.User{ID: 2, FirstName: "Bob"},
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", int64(2), "Bob").Return(nil)
			},
			expectNext: true,
		},
		{
			name:       "no sender passes through",
			setupMock:  func(m *testutil.MockUserRepository) {},
			expectNext: true,
		},
		{
			name:   "repository error stops the chain",
			sender: &tele.User{ID: 3, Username: "carol"},
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", int64(3), "carol").Return(errors.New("db down"))
			},
			expectSent: 1,
		},
		{
			name:     "repository error answers callbacks",
			sender:   &tele.User{ID: 4, Username: "dave"},
			callback: &tele.Callback{ID: "cb"},
			setupMock: func(m *testutil.MockUserRepository) {
				m.On("EnsureUserExists", int64(4), "dave").Return(errors.New("db down"))
			},
			expectSent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			tt.setupMock(repo)

			mw := UserMiddleware(service.NewUserService(repo), testutil.NewTestLogger())

			called := false
			next := func(c tele.Context) error {
				called = true
				return nil
			}

			ctx := &fakeContext{sender: tt.sender, callback: tt.callback}
			err := mw(next)(ctx)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)
			assert.Len(t, ctx.sent, tt.expectSent)
			repo.AssertExpectations(t)
			repo.AssertNotCalled(t, "ListUserIDs")
		})
	}
}
