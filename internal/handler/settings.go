package handler

import (
	"fmt"
	"strings"

	"dailyvocab/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleSettings shows the difficulty picker and cache controls
func (h *Handler) handleSettings(c tele.Context) error {
	userID := c.Sender().ID

	current := h.settingsService.Difficulty(userID)

	var b strings.Builder
	b.WriteString("⚙️ 设置\n\n单词难度：\n")
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, level := range domain.DifficultyLevels() {
		mark := "  "
		label := level.DisplayName()
		if level == current {
			mark = "✅"
			label = "✅ " + label
		}
		fmt.Fprintf(&b, "%s %s：%s\n", mark, level.DisplayName(), level.Description())
		rows = append(rows, markup.Row(markup.Data(label, "diff_"+string(level))))
	}
	rows = append(rows, markup.Row(btnClearCache))
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.reply(c, b.String(), markup)
}

// handleSetDifficulty stores the chosen level and redraws the settings
func (h *Handler) handleSetDifficulty(c tele.Context, raw string) error {
	userID := c.Sender().ID

	level, err := domain.ParseDifficulty(raw)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "未知的难度"})
	}

	if level == h.settingsService.Difficulty(userID) {
		return c.Respond()
	}

	if err := h.settingsService.SetDifficulty(userID, level); err != nil {
		h.logger.Error("Failed to set difficulty", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, "保存失败，请稍后再试")
	}

	return h.handleSettings(c)
}

// handleClearCache removes every cached day of the user
func (h *Handler) handleClearCache(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.wordService.ClearCache(userID); err != nil {
		h.logger.Error("Failed to clear cache", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, "清除失败，请稍后再试")
	}

	if c.Callback() != nil {
		if err := c.Respond(&tele.CallbackResponse{Text: "单词缓存已清除"}); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
		if err := c.Edit(mainMenuText, mainMenuMarkup()); err != nil {
			return h.handleEditError(err, c, userID)
		}
		return nil
	}
	return c.Send("🗑 单词缓存已清除\n\n"+mainMenuText, mainMenuMarkup())
}
