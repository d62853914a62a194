package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"dailyvocab/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it was already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callback queries not bound to a static button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons whose Unique did not come through
	if callback.Unique == "" {
		switch data {
		case btnMainMenu.Unique:
			return h.handleStart(c)
		case btnToday.Unique:
			return h.handleToday(c)
		case btnGenerate.Unique:
			return h.handleGenerate(c)
		case btnViewDays.Unique:
			return h.handleViewDays(c)
		case btnFavorites.Unique:
			return h.handleFavorites(c)
		case btnPractice.Unique:
			return h.handlePractice(c)
		case btnPracticeSkip.Unique:
			return h.handlePracticeSkip(c)
		case btnPracticeRestart.Unique:
			return h.handlePracticeRestart(c)
		case btnSettings.Unique:
			return h.handleSettings(c)
		case btnClearCache.Unique:
			return h.handleClearCache(c)
		case btnGames.Unique:
			return h.handleGames(c)
		case btnSnake.Unique:
			return h.handleSnake(c)
		case btnTetris.Unique:
			return h.handleTetris(c)
		case btnCancel.Unique:
			return h.handleCancel(c)
		}
		if _, ok := gameActions[data]; ok {
			return h.runGameAction(c, data)
		}
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, "page_"):
		return h.handlePagination(c, data)
	case strings.HasPrefix(data, "day_"):
		return h.handleDaySelection(c, data)
	case strings.HasPrefix(data, "w_"):
		return h.showWord(c, strings.TrimPrefix(data, "w_"))
	case strings.HasPrefix(data, "say_"):
		return h.handleSpeak(c, strings.TrimPrefix(data, "say_"))
	case strings.HasPrefix(data, "fav_"):
		return h.handleToggleFavorite(c, strings.TrimPrefix(data, "fav_"))
	case strings.HasPrefix(data, "rel_"):
		return h.handleRelated(c, strings.TrimPrefix(data, "rel_"))
	case strings.HasPrefix(data, "diff_"):
		return h.handleSetDifficulty(c, strings.TrimPrefix(data, "diff_"))
	case strings.HasPrefix(data, "snake_d_"):
		return h.handleSnakeDifficulty(c, strings.TrimPrefix(data, "snake_d_"))
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleViewDays shows the first page of cached days
func (h *Handler) handleViewDays(c tele.Context) error {
	return h.showDaysPage(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	pageStr := strings.TrimPrefix(strings.TrimSpace(data), "page_")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "无效的页码"})
	}

	return h.showDaysPage(c, page)
}

func (h *Handler) showDaysPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	records, totalPages := h.wordService.GetRecordsPage(userID, page)
	if len(records) == 0 {
		return alert(c, "单词库还是空的")
	}
	if page < 1 {
		page = 1
	}

	text := fmt.Sprintf("📅 单词库（第 %d/%d 页）\n\n选择日期查看单词：", page, totalPages)
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	now := h.wordService.Now()
	for _, record := range records {
		btn := markup.Data(renderRecordLabel(record, now), "day_"+record.Date)
		rows = append(rows, markup.Row(btn))
	}

	// Add pagination buttons
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}

	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.reply(c, text, markup)
}

// handleDaySelection shows words for selected day
func (h *Handler) handleDaySelection(c tele.Context, data string) error {
	userID := c.Sender().ID

	dateStr := strings.TrimPrefix(strings.TrimSpace(data), "day_")
	h.logger.Debug("Handling day selection", zap.String("date", dateStr), zap.Int64("user_id", userID))

	words, err := h.wordService.GetWordsByDate(userID, dateStr)
	if err != nil {
		h.logger.Warn("Invalid day selection", zap.Error(err), zap.String("date", dateStr))
		return c.Respond(&tele.CallbackResponse{Text: "无效的日期"})
	}

	if len(words) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "这一天没有单词"})
	}

	record := domain.WordRecord{Date: dateStr, Words: words}
	title := fmt.Sprintf("📝 %s 的单词（%d）", record.DisplayString(h.wordService.Now()), len(words))

	return h.reply(c, renderWordList(title, words), wordsMarkup(words, btnViewDays))
}
