package schedule

import (
	"context"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSchedulePage показывает расписание учителя за неделю или месяц
func HandleSchedulePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	teacherID, mode, offset, err := common.ParseScheduleData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		projection, err := h.ScheduleService.Project(ctx, teacherID, mode, offset)
		if err != nil {
			common.HandleError(hc, err, "project_schedule")
			return
		}

		text, kb := common.BuildScheduleScreen(projection)
		hc.ShowScreen(text, kb, "")
	})
}

// HandleExport отправляет расписание за период файлом Excel
func HandleExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	teacherID, mode, offset, err := common.ParseScheduleData(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		projection, err := h.ScheduleService.Project(ctx, teacherID, mode, offset)
		if err != nil {
			common.HandleError(hc, err, "project_schedule")
			return
		}

		if err := common.SendProjectionExport(ctx, b, hc.ChatID, projection); err != nil {
			common.HandleError(hc, err, "export_schedule")
			return
		}

		common.LogAndAnswer(hc, "Schedule exported", "📥 Файл отправлен",
			zap.Int64("teacher_id", teacherID),
			zap.String("mode", string(mode)),
			zap.Int("offset", offset))
	})
}
