package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_office/internal/controller/state"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"Справочники:\n" +
	"/teachers - Список учителей\n" +
	"/students - Список учеников\n" +
	"/addteacher - Добавить учителя\n" +
	"/deleteteacher ID - Удалить учителя\n\n" +
	"Брони:\n" +
	"/newbooking - Создать бронь по анкете\n" +
	"/booking ID - Открыть бронь\n" +
	"/deletebooking ID - Удалить бронь\n\n" +
	"Расписание:\n" +
	"/schedule ID [week|month] [смещение] - Расписание учителя\n" +
	"/export ID [week|month] [смещение] - Выгрузка в Excel\n\n" +
	"Служебное:\n" +
	"/reconcile - Запустить сверку статусов\n" +
	"/cancel - Отменить текущий диалог"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\nЭто консоль оператора учебного центра.\n\n%s",
		update.Message.From.FirstName,
		helpText,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.",
	})
}

// HandleTeachers показывает список учителей
func (h *Handlers) HandleTeachers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	teachers, err := h.directoryService.ListTeachers(ctx)
	if err != nil {
		h.logger.Error("Failed to list teachers", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(teachers) == 0 {
		h.sendMessage(ctx, b, chatID, "👩‍🏫 Учителей пока нет.\n\nДобавить: /addteacher", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("👩‍🏫 <b>Учителя</b>\n\n")
	for _, t := range teachers {
		sb.WriteString(formatting.FormatTeacherLine(t) + "\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String(), nil)
}

// HandleStudents показывает список учеников
func (h *Handlers) HandleStudents(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	students, err := h.directoryService.ListStudents(ctx)
	if err != nil {
		h.logger.Error("Failed to list students", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if len(students) == 0 {
		h.sendMessage(ctx, b, chatID, "🎒 Учеников пока нет.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("🎒 <b>Ученики</b>\n\n")
	for _, s := range students {
		sb.WriteString(formatting.FormatStudentLine(s) + "\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String(), nil)
}

// HandleDeleteTeacher удаляет учителя по ID
func (h *Handlers) HandleDeleteTeacher(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "❌ Использование: /deleteteacher ID")
		return
	}
	teacherID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	if err := h.directoryService.DeleteTeacher(ctx, teacherID); err != nil {
		h.logger.Error("Failed to delete teacher", zap.Int64("teacher_id", teacherID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.logger.Info("Teacher deleted",
		zap.Int64("teacher_id", teacherID),
		zap.Int64("operator_id", update.Message.From.ID))
	h.sendMessage(ctx, b, chatID, "🗑 Учитель удалён", nil)
}

// HandleSchedule показывает расписание учителя за период
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	teacherID, mode, offset, err := parsePeriodArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Использование: /schedule ID [week|month] [смещение]")
		return
	}

	projection, err := h.scheduleService.Project(ctx, teacherID, mode, offset)
	if err != nil {
		h.logger.Error("Failed to project schedule", zap.Int64("teacher_id", teacherID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildScheduleScreen(projection)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// HandleExport отправляет расписание учителя файлом Excel
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	teacherID, mode, offset, err := parsePeriodArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Использование: /export ID [week|month] [смещение]")
		return
	}

	projection, err := h.scheduleService.Project(ctx, teacherID, mode, offset)
	if err != nil {
		h.logger.Error("Failed to project schedule", zap.Int64("teacher_id", teacherID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if err := common.SendProjectionExport(ctx, b, chatID, projection); err != nil {
		h.logger.Error("Failed to export schedule", zap.Int64("teacher_id", teacherID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
	}
}

// HandleBooking показывает бронь по ID
func (h *Handlers) HandleBooking(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.withBookingArg(ctx, b, update, "/booking", func(chatID int64, id uuid.UUID) {
		booking, err := h.bookingService.GetBooking(ctx, id)
		if err != nil {
			h.sendError(ctx, b, chatID, common.ErrorMessage(err))
			return
		}

		text, kb := common.BuildBookingScreen(booking, h.location)
		h.sendMessage(ctx, b, chatID, text, kb)
	})
}

// HandleDeleteBooking запрашивает подтверждение удаления брони
func (h *Handlers) HandleDeleteBooking(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.withBookingArg(ctx, b, update, "/deletebooking", func(chatID int64, id uuid.UUID) {
		booking, err := h.bookingService.GetBooking(ctx, id)
		if err != nil {
			h.sendError(ctx, b, chatID, common.ErrorMessage(err))
			return
		}

		text, kb := common.BuildDeleteConfirmScreen(booking, h.location)
		h.sendMessage(ctx, b, chatID, text, kb)
	})
}

// HandleReconcile запускает сверку статусов вне расписания
func (h *Handlers) HandleReconcile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.logger.Info("Manual reconciliation requested", zap.Int64("operator_id", update.Message.From.ID))

	result, err := h.reconciler.Reconcile(ctx)
	if errors.Is(err, service.ErrReconcileInProgress) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	if err != nil {
		h.logger.Error("Manual reconciliation failed", zap.Error(err))
	}

	text := fmt.Sprintf(
		"🔄 Сверка завершена\n\nУчителей обновлено: %d\nУчеников обновлено: %d\nОшибок: %d",
		result.TeachersUpdated,
		result.StudentsUpdated,
		result.Failed,
	)
	h.sendMessage(ctx, b, chatID, text, nil)
}

func (h *Handlers) withBookingArg(
	ctx context.Context,
	b *bot.Bot,
	update *models.Update,
	command string,
	handler func(chatID int64, id uuid.UUID),
) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "❌ Использование: "+command+" ID")
		return
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный ID брони")
		return
	}

	handler(chatID, id)
}
