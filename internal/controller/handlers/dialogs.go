package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_office/internal/controller/state"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNewBookingStart начинает ввод анкеты новой брони
func (h *Handlers) HandleNewBookingStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetState(telegramID, state.StateNewBookingForm)

	h.logger.Info("Starting booking form", zap.Int64("telegram_id", telegramID))

	text := "📝 <b>Новая бронь</b>\n\n" +
		"Скопируйте анкету, заполните и отправьте одним сообщением. " +
		"Неделя должна начинаться с понедельника.\n\n" +
		"<pre>" + html.EscapeString(BookingFormTemplate) + "</pre>\n\n" +
		"Для отмены используйте /cancel"

	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(common.PrefixCancelDialog)).Build()
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleAddTeacherStart начинает добавление учителя
func (h *Handlers) HandleAddTeacherStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.stateManager.SetState(update.Message.From.ID, state.StateAddTeacher)

	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(common.PrefixCancelDialog)).Build()
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"👩‍🏫 Отправьте данные учителя одной строкой:\n\n"+
			"<code>Имя; email; телефон</code>\n\n"+
			"Email и телефон можно не указывать.",
		kb)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния оператора
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
	case state.StateNewBookingForm:
		h.handleBookingForm(ctx, b, update)
	case state.StateAddTeacher:
		h.handleAddTeacher(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}

// handleBookingForm создаёт брони из заполненной анкеты
// При ошибке состояние сохраняется, чтобы оператор мог исправить анкету
func (h *Handlers) handleBookingForm(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	input, err := ParseBookingForm(update.Message.Text, h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nИсправьте анкету и отправьте ещё раз.")
		return
	}

	bookings, err := h.bookingService.CreateBooking(ctx, input)
	if err != nil {
		h.logger.Warn("Booking form rejected",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nИсправьте анкету и отправьте ещё раз.")
		return
	}

	h.stateManager.ClearState(telegramID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Создано %d %s\n\n", len(bookings), formatting.PluralizeBookings(len(bookings)))
	for _, booking := range bookings {
		fmt.Fprintf(&sb, "• %s · <code>%s</code>\n",
			formatting.FormatWeekRange(booking.WeekStartDate.In(h.location), booking.WeekEndDate.In(h.location)),
			booking.ID,
		)
	}

	first := bookings[0]
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🗓 Расписание",
			common.ScheduleData(common.PrefixSchedule, first.TeacherID, service.PeriodWeek, 0))).
		Row(keyboard.Button("✏️ Открыть первую", common.BookingData(common.PrefixBooking, first.ID))).
		Build()

	h.sendMessage(ctx, b, chatID, sb.String(), kb)
}

// handleAddTeacher создаёт учителя из строки "Имя; email; телефон"
func (h *Handlers) handleAddTeacher(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	parts := strings.Split(update.Message.Text, ";")
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	if len(parts) > 3 {
		h.sendError(ctx, b, chatID, "❌ Ожидается: Имя; email; телефон")
		return
	}

	teacher, err := h.directoryService.CreateTeacher(ctx, parts[0], parts[1], parts[2])
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте ещё раз:")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Teacher created",
		zap.Int64("teacher_id", teacher.ID),
		zap.Int64("operator_id", telegramID))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🗓 Расписание",
			common.ScheduleData(common.PrefixSchedule, teacher.ID, service.PeriodWeek, 0))).
		Build()
	h.sendMessage(ctx, b, chatID, "✅ Учитель добавлен\n\n"+formatting.FormatTeacherLine(teacher), kb)
}
