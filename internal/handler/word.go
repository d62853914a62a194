package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dailyvocab/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const generateTimeout = 60 * time.Second

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StatePracticing:
		return h.handlePracticeAnswer(c, text)

	default:
		// Idle state - treat the text as a word lookup
		if text == "" {
			return c.Send(mainMenuText, mainMenuMarkup())
		}
		return h.showWord(c, text)
	}
}

// wordsMarkup lists one detail button per word plus navigation
func wordsMarkup(words []domain.Word, extra ...tele.Btn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	var row tele.Row
	for _, w := range words {
		unique := "w_" + w.Text
		if !callbackFits(unique) {
			continue
		}
		row = append(row, markup.Data(w.Text, unique))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if len(extra) > 0 {
		rows = append(rows, markup.Row(extra...))
	}
	rows = append(rows, markup.Row(btnMainMenu))

	markup.Inline(rows...)
	return markup
}

// handleToday shows today's words
func (h *Handler) handleToday(c tele.Context) error {
	userID := c.Sender().ID

	words := h.wordService.GetTodayWords(userID)
	text := renderWordList("📚 今日单词", words)

	return h.reply(c, text, wordsMarkup(words, btnGenerate, btnPractice))
}

// handleGenerate fetches new words and shows the merged list
func (h *Handler) handleGenerate(c tele.Context) error {
	userID := c.Sender().ID

	if c.Callback() != nil {
		if err := c.Respond(&tele.CallbackResponse{Text: "正在生成单词…"}); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	words := h.wordService.GenerateNewWords(ctx, userID)
	text := renderWordList(fmt.Sprintf("✨ 今日单词（%s）", h.settingsService.Difficulty(userID).DisplayName()), words)
	markup := wordsMarkup(words, btnGenerate, btnPractice)

	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if !strings.Contains(err.Error(), "message is not modified") {
				h.logger.Warn("Failed to edit message, sending new", zap.Error(err), zap.Int64("user_id", userID))
				return c.Send(text, markup)
			}
		}
		return nil
	}
	return c.Send(text, markup)
}

// showWord renders the detail card of a word
func (h *Handler) showWord(c tele.Context, text string) error {
	userID := c.Sender().ID

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	word := h.wordService.WordDetails(ctx, userID, text)
	return h.reply(c, renderWordCard(word), h.wordCardMarkup(userID, word))
}

func (h *Handler) wordCardMarkup(userID int64, word domain.Word) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	var actions tele.Row
	if callbackFits("say_" + word.Text) {
		actions = append(actions, markup.Data("🔊 发音", "say_"+word.Text))
	}
	if callbackFits("fav_" + word.Text) {
		label := "⭐ 收藏"
		if h.wordService.IsFavorite(userID, word.Text) {
			label = "💔 取消收藏"
		}
		actions = append(actions, markup.Data(label, "fav_"+word.Text))
	}
	if callbackFits("rel_" + word.Text) {
		actions = append(actions, markup.Data("🔗 关联词", "rel_"+word.Text))
	}
	if len(actions) > 0 {
		rows = append(rows, actions)
	}

	rows = append(rows, markup.Row(btnToday, btnMainMenu))
	markup.Inline(rows...)
	return markup
}

// handleSpeak sends the pronunciation of a word as audio
func (h *Handler) handleSpeak(c tele.Context, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	path, err := h.speaker.Speak(ctx, text)
	if err != nil {
		h.logger.Warn("Failed to synthesize speech", zap.String("word", text), zap.Error(err))
		return alert(c, "发音暂时不可用")
	}

	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	return c.Send(&tele.Audio{
		File:      tele.FromDisk(path),
		Title:     text,
		Performer: "dailyvocab",
		FileName:  text + ".mp3",
	})
}

// handleToggleFavorite adds or removes a word from favorites and refreshes the card
func (h *Handler) handleToggleFavorite(c tele.Context, text string) error {
	userID := c.Sender().ID

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	word := h.wordService.WordDetails(ctx, userID, text)

	toast := "已收藏 ⭐"
	var err error
	if h.wordService.IsFavorite(userID, word.Text) {
		toast = "已取消收藏"
		err = h.wordService.RemoveFavorite(userID, word.Text)
	} else {
		err = h.wordService.AddFavorite(userID, word)
	}
	if err != nil {
		h.logger.Error("Failed to update favorites", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, "操作失败，请稍后再试")
	}

	if err := c.Edit(renderWordCard(word), h.wordCardMarkup(userID, word)); err != nil {
		h.logger.Debug("Failed to refresh word card", zap.Error(err), zap.Int64("user_id", userID))
	}
	return c.Respond(&tele.CallbackResponse{Text: toast})
}

// handleRelated shows the related words of a word
func (h *Handler) handleRelated(c tele.Context, text string) error {
	related := h.wordService.RelatedWords(text)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	var row tele.Row
	for _, r := range related {
		if callbackFits("w_" + r.Word) {
			row = append(row, markup.Data(r.Word, "w_"+r.Word))
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if callbackFits("w_" + text) {
		rows = append(rows, markup.Row(markup.Data("◀️ "+text, "w_"+text)))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.reply(c, renderRelated(text, related), markup)
}

// handleFavorites lists saved words
func (h *Handler) handleFavorites(c tele.Context) error {
	userID := c.Sender().ID

	favorites := h.wordService.Favorites(userID)
	if len(favorites) == 0 {
		return alert(c, "还没有收藏的单词")
	}

	return h.reply(c, renderWordList("⭐ 我的收藏", favorites), wordsMarkup(favorites))
}
