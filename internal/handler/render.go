package handler

import (
	"fmt"
	"strings"
	"time"

	"dailyvocab/internal/domain"
	"dailyvocab/internal/game"
	"dailyvocab/internal/game/snake"
	"dailyvocab/internal/game/tetris"
	"dailyvocab/internal/practice"
)

// maxCallbackData is Telegram's limit for inline button payloads
const maxCallbackData = 64

const (
	cellEmpty = "⬜"
	cellHead  = "🟩"
	cellBody  = "🟢"
	cellFood  = "🍎"
)

var tetrisCells = [...]string{"⬜", "🟦", "🟨", "🟪", "🟩", "🟥", "🟫", "🟧"}

func renderWordList(title string, words []domain.Word) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	for i, w := range words {
		fmt.Fprintf(&b, "%d. %s", i+1, w.Text)
		if w.Phonetic != "" {
			fmt.Fprintf(&b, " %s", w.Phonetic)
		}
		if w.Translation != "" {
			fmt.Fprintf(&b, " — %s", w.Translation)
		}
		b.WriteString("\n")
	}
	if len(words) == 0 {
		b.WriteString("暂无单词\n")
	}
	return b.String()
}

func renderWordCard(w domain.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 %s", w.Text)
	if w.Phonetic != "" {
		fmt.Fprintf(&b, "  %s", w.Phonetic)
	}
	b.WriteString("\n\n")
	if w.PartOfSpeech != "" {
		fmt.Fprintf(&b, "%s ", w.PartOfSpeech)
	}
	fmt.Fprintf(&b, "%s\n", w.Translation)
	if w.Example != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", w.Example)
		if w.ExampleTranslation != "" {
			fmt.Fprintf(&b, "   %s\n", w.ExampleTranslation)
		}
	}
	if w.OtherForms != "" {
		fmt.Fprintf(&b, "\n🔀 %s\n", w.OtherForms)
	}
	return b.String()
}

func renderRelated(text string, related []domain.RelatedWord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔗 %s 的关联词\n\n", text)
	for _, r := range related {
		fmt.Fprintf(&b, "• %s（%s）%s\n", r.Word, r.Relationship, r.Translation)
	}
	return b.String()
}

func renderPractice(s *practice.Session) string {
	current, ok := s.Current()
	if !ok {
		return renderPracticeResult(s)
	}
	return fmt.Sprintf(
		"✏️ 练习 %d/%d  得分 %d\n\n%s\n\n提示：%s\n\n请输入完整的单词：",
		s.Index()+1, s.Total(), s.Score(),
		spaced(current.Masked),
		current.Word.Translation,
	)
}

func renderPracticeResult(s *practice.Session) string {
	if s.Total() == 0 {
		return "还没有可以练习的单词，先去获取今天的单词吧。"
	}
	return fmt.Sprintf("🏁 练习结束！\n\n得分：%d/%d", s.Score(), s.Total())
}

func renderAnswer(r practice.Result) string {
	if r.Correct {
		return "✅ 回答正确！"
	}
	return fmt.Sprintf("❌ 正确答案：%s", r.Answer)
}

// spaced separates letters so masked blanks stay distinguishable
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

func stateLabel(s game.State) string {
	switch s {
	case game.Ready:
		return "准备"
	case game.Playing:
		return "进行中"
	case game.Paused:
		return "已暂停"
	case game.GameOver:
		return "游戏结束"
	}
	return s.String()
}

func renderSnake(g *snake.Game, highScore int) string {
	body := make(map[game.Point]bool)
	for _, p := range g.Body() {
		body[p] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🐍 贪吃蛇  难度 %d  %s\n得分 %d  最高 %d\n\n", g.Difficulty(), stateLabel(g.State()), g.Score(), highScore)
	for y := 0; y < snake.BoardSize; y++ {
		for x := 0; x < snake.BoardSize; x++ {
			p := game.Point{X: x, Y: y}
			switch {
			case p == g.Head():
				b.WriteString(cellHead)
			case body[p]:
				b.WriteString(cellBody)
			case p == g.Food():
				b.WriteString(cellFood)
			default:
				b.WriteString(cellEmpty)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderTetris(g *tetris.Game, highScore int) string {
	grid := g.Grid()

	var b strings.Builder
	fmt.Fprintf(&b, "🧱 俄罗斯方块  %s\n得分 %d  行数 %d  等级 %d  最高 %d\n", stateLabel(g.State()), g.Score(), g.Lines(), g.Level(), highScore)
	if g.State() != game.Ready {
		fmt.Fprintf(&b, "下一个：%s\n", g.Next().Kind)
	}
	b.WriteString("\n")
	for y := 0; y < tetris.Height; y++ {
		for x := 0; x < tetris.Width; x++ {
			b.WriteString(tetrisCells[grid[y][x]])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderRecordLabel(r domain.WordRecord, now time.Time) string {
	return fmt.Sprintf("%s (%d)", r.DisplayString(now), len(r.Words))
}

// callbackFits reports whether unique fits into a button payload
func callbackFits(unique string) bool {
	return len(unique)+1 <= maxCallbackData
}
