package common

import (
	"context"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WithContext создаёт HandlerContext и проверяет наличие сообщения
func WithContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)
	if hc.Message == nil {
		HandleError(hc, ErrNoMessage, "callback")
		return
	}

	handler(hc)
}

// WithBooking создаёт HandlerContext и загружает бронь
// При ошибке автоматически отвечает оператору
func WithBooking(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	bookingID uuid.UUID,
	handler func(*HandlerContext, *model.Booking),
) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		booking, err := h.BookingService.GetBooking(ctx, bookingID)
		if err != nil {
			h.Logger.Error("Failed to load booking",
				zap.String("booking_id", bookingID.String()),
				zap.Error(err))
			hc.AnswerAlert(ErrorMessage(err))
			return
		}

		handler(hc, booking)
	})
}

// HandleError обрабатывает ошибку и отправляет ответ оператору
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string, fields ...zap.Field) {
	fields = append(fields, zap.Int64("telegram_id", hc.TelegramID))
	hc.Handler.Logger.Info(message, fields...)
	hc.Answer(answer)
}
