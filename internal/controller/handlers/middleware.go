package handlers

import (
	"context"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// OperatorOnly пропускает только операторов из конфигурации
func OperatorOnly(isOperator func(telegramID int64) bool, logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			telegramID, ok := senderID(update)
			if !ok {
				return
			}

			if isOperator(telegramID) {
				next(ctx, b, update)
				return
			}

			logger.Warn("Rejected non-operator", zap.Int64("telegram_id", telegramID))

			text := common.ErrorMessage(common.ErrNotOperator)
			switch {
			case update.CallbackQuery != nil:
				common.AnswerCallbackAlert(ctx, b, update.CallbackQuery.ID, text)
			case update.Message != nil:
				if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: update.Message.Chat.ID,
					Text:   text,
				}); err != nil {
					logger.Error("Failed to send rejection", zap.Error(err))
				}
			}
		}
	}
}

func senderID(update *models.Update) (int64, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, true
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID, true
	}
	return 0, false
}
