package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// commandArgs возвращает аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// parsePeriodArgs разбирает "<teacher_id> [week|month] [offset]"
func parsePeriodArgs(args []string) (int64, service.PeriodMode, int, error) {
	if len(args) == 0 || len(args) > 3 {
		return 0, "", 0, common.ErrInvalidFormat
	}

	teacherID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, "", 0, common.ErrInvalidFormat
	}

	mode := service.PeriodWeek
	if len(args) > 1 {
		if mode, err = service.ParsePeriodMode(args[1]); err != nil {
			return 0, "", 0, common.ErrInvalidFormat
		}
	}

	offset := 0
	if len(args) > 2 {
		if offset, err = strconv.Atoi(args[2]); err != nil {
			return 0, "", 0, common.ErrInvalidFormat
		}
	}

	return teacherID, mode, offset, nil
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
