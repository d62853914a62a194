package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "day button", input: "\fday_2024-06-01", expected: "day_2024-06-01"},
		{name: "page button", input: "\fpage_2", expected: "page_2"},
		{name: "word button", input: "\fw_perseverance", expected: "w_perseverance"},
		{name: "multi-word entry keeps its space", input: "\fw_ice cream", expected: "w_ice cream"},
		{name: "snake difficulty", input: "\fsnake_d_3", expected: "snake_d_3"},
		{name: "difficulty level", input: "\fdiff_UNIVERSITY", expected: "diff_UNIVERSITY"},
		{name: "trailing newline from client", input: "\fpage_3\n", expected: "page_3"},
		{name: "control bytes inside payload", input: "day_\x002024-06-01\x7f", expected: "day_2024-06-01"},
		{name: "separator only", input: "\f", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}

func TestPracticeMarkupCallbacks(t *testing.T) {
	h := newPracticeTestHandler(t, 21, "explore", "harmony")
	c := &fakeContext{sender: &tele.User{ID: 21}}
	assert.NoError(t, h.handlePractice(c))

	ps, ok := h.practiceSession(21)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, []string{btnPracticeSkip.Unique, btnCancel.Unique}, markupUniques(practiceMarkup(ps.session)))

	for !ps.session.Done() {
		ps.session.Skip()
	}
	assert.Equal(t,
		[]string{btnPracticeRestart.Unique, btnToday.Unique, btnMainMenu.Unique},
		markupUniques(practiceMarkup(ps.session)),
	)
}
