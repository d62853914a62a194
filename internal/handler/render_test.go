package handler

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/game/snake"
	"dailyvocab/internal/game/tetris"
	"dailyvocab/internal/practice"
	"dailyvocab/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestRenderWordList(t *testing.T) {
	words := testutil.NewTestWords("apple", "banana")

	text := renderWordList("📚 今日单词", words)

	assert.True(t, strings.HasPrefix(text, "📚 今日单词\n\n"))
	assert.Contains(t, text, "1. apple [apple] — apple的释义")
	assert.Contains(t, text, "2. banana")
}

func TestRenderWordList_Empty(t *testing.T) {
	text := renderWordList("⭐ 我的收藏", nil)
	assert.Contains(t, text, "暂无单词")
}

func TestRenderWordCard(t *testing.T) {
	tests := []struct {
		name     string
		word     domain.Word
		contains []string
		missing  []string
	}{
		{
			name:     "full entry",
			word:     testutil.NewTestWord("apple", "苹果"),
			contains: []string{"📖 apple", "[apple]", "n. 苹果", "📝 This is apple.", "这是苹果。", domain.NoOtherForms},
		},
		{
			name:     "without example",
			word:     domain.Word{Text: "run", Translation: "跑"},
			contains: []string{"📖 run", "跑"},
			missing:  []string{"📝", "🔀"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := renderWordCard(tt.word)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestRenderPractice(t *testing.T) {
	s := practice.NewSession(testutil.NewTestWords("apple"), rand.New(rand.NewSource(1)))

	text := renderPractice(s)
	assert.Contains(t, text, "练习 1/1")
	assert.Contains(t, text, "apple的释义")
	assert.NotContains(t, text, "apple\n")

	s.Submit("apple")
	assert.Contains(t, renderPractice(s), "得分：1/1")
}

func TestRenderPracticeResult_NoWords(t *testing.T) {
	s := practice.NewSession(nil, rand.New(rand.NewSource(1)))
	assert.Contains(t, renderPracticeResult(s), "还没有可以练习的单词")
}

func TestRenderAnswer(t *testing.T) {
	assert.Equal(t, "✅ 回答正确！", renderAnswer(practice.Result{Correct: true, Answer: "apple"}))
	assert.Equal(t, "❌ 正确答案：apple", renderAnswer(practice.Result{Answer: "apple"}))
}

func TestSpaced(t *testing.T) {
	assert.Equal(t, "a _ p l _", spaced("a_pl_"))
	assert.Equal(t, "", spaced(""))
}

func TestRenderSnake(t *testing.T) {
	g := snake.New(2, rand.New(rand.NewSource(1)))

	text := renderSnake(g, 40)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	assert.Contains(t, lines[0], "难度 2")
	assert.Contains(t, lines[0], "准备")
	assert.Contains(t, lines[1], "最高 40")
	// header, score line, blank line, then the board
	assert.Len(t, lines, 3+snake.BoardSize)
	assert.Equal(t, 1, strings.Count(text, cellHead))
	assert.Equal(t, 1, strings.Count(text, cellFood))
}

func TestRenderTetris(t *testing.T) {
	g := tetris.New(rand.New(rand.NewSource(1)))

	ready := renderTetris(g, 0)
	assert.NotContains(t, ready, "下一个")
	assert.Contains(t, ready, "准备")

	g.Start()
	playing := renderTetris(g, 300)
	assert.Contains(t, playing, "下一个：")
	assert.Contains(t, playing, "最高 300")

	filled := 0
	for _, cell := range tetrisCells[1:] {
		filled += strings.Count(playing, cell)
	}
	assert.Equal(t, 4, filled)
}

func TestRenderRecordLabel(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{name: "today", date: "2024-03-15", expected: "今天 (2)"},
		{name: "yesterday", date: "2024-03-14", expected: "昨天 (2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.WordRecord{Date: tt.date, Words: testutil.NewTestWords("a", "b")}
			assert.Equal(t, tt.expected, renderRecordLabel(r, now))
		})
	}
}

func TestCallbackFits(t *testing.T) {
	assert.True(t, callbackFits("w_apple"))
	assert.True(t, callbackFits(strings.Repeat("a", maxCallbackData-1)))
	assert.False(t, callbackFits(strings.Repeat("a", maxCallbackData)))
}
