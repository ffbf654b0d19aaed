package booking

import (
	"context"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleViewBooking показывает бронь с кнопками дней
func HandleViewBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, err := common.ParseBookingData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithBooking(ctx, b, callback, h, bookingID, func(hc *common.HandlerContext, booking *model.Booking) {
		text, kb := common.BuildBookingScreen(booking, h.Location)
		hc.ShowScreen(text, kb, "")
	})
}

// HandleSelectDay показывает выбор кода для дня
func HandleSelectDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, day, err := common.ParseDayData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithBooking(ctx, b, callback, h, bookingID, func(hc *common.HandlerContext, booking *model.Booking) {
		text, kb := common.BuildDayStatusPicker(booking, day, h.Location)
		hc.ShowScreen(text, kb, "")
	})
}

// HandleSetCode применяет код занятия к дню брони
func HandleSetCode(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, day, code, err := common.ParseCodeData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		booking, err := h.BookingService.SetDayStatus(ctx, bookingID, day, code, nil)
		if err != nil {
			common.HandleError(hc, err, "set_day_status")
			return
		}

		h.Logger.Info("Session status updated",
			zap.String("booking_id", bookingID.String()),
			zap.String("day", string(day)),
			zap.String("code", string(code)),
			zap.Int64("operator_id", hc.TelegramID))

		text, kb := common.BuildBookingScreen(booking, h.Location)
		hc.ShowScreen(text, kb, "✅ Статус обновлён")
	})
}

// HandleDeleteBooking запрашивает подтверждение удаления
func HandleDeleteBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, err := common.ParseBookingData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithBooking(ctx, b, callback, h, bookingID, func(hc *common.HandlerContext, booking *model.Booking) {
		text, kb := common.BuildDeleteConfirmScreen(booking, h.Location)
		hc.ShowScreen(text, kb, "")
	})
}

// HandleConfirmDelete мягко удаляет бронь
func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	bookingID, err := common.ParseBookingData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithBooking(ctx, b, callback, h, bookingID, func(hc *common.HandlerContext, booking *model.Booking) {
		if err := h.BookingService.DeleteBooking(ctx, booking.ID); err != nil {
			common.HandleError(hc, err, "delete_booking")
			return
		}

		kb := keyboard.NewBuilder().
			AddBackButton(common.ScheduleData(common.PrefixSchedule, booking.TeacherID, service.PeriodWeek, 0)).
			Build()
		h.Logger.Info("Booking deleted",
			zap.String("booking_id", booking.ID.String()),
			zap.Int64("teacher_id", booking.TeacherID),
			zap.Int64("operator_id", hc.TelegramID))

		hc.ShowScreen("🗑 Бронь удалена", kb, "🗑 Удалено")
	})
}
