package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// callbackHandler обработчик одного вида callback
type callbackHandler func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler)

// prefixRoutes проверяются по порядку, более длинные префиксы идут раньше
var prefixRoutes = []struct {
	prefix  string
	handler callbackHandler
}{
	{common.PrefixSchedule, schedule.HandleSchedulePage},
	{common.PrefixExport, schedule.HandleExport},
	{common.PrefixDeleteConfirm, booking.HandleConfirmDelete},
	{common.PrefixDelete, booking.HandleDeleteBooking},
	{common.PrefixBooking, booking.HandleViewBooking},
	{common.PrefixDay, booking.HandleSelectDay},
	{common.PrefixCode, booking.HandleSetCode},
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch data {
	case common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	case common.PrefixCancelDialog:
		h.StateManager.ClearState(callback.From.ID)
		common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
			hc.ShowScreen("❌ Действие отменено", nil, "")
		})
		return
	}

	if handler := match(data); handler != nil {
		handler(ctx, b, callback, h)
		return
	}

	h.Logger.Warn("Unknown callback", zap.String("data", data))
	common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
}

func match(data string) callbackHandler {
	for _, route := range prefixRoutes {
		if strings.HasPrefix(data, route.prefix) {
			return route.handler
		}
	}
	return nil
}
