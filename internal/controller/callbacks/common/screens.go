package common

import (
	"fmt"
	"html"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// maxBookingButtons ограничение кнопок броней на экране расписания
const maxBookingButtons = 20

// BuildScheduleScreen формирует экран расписания учителя за период
func BuildScheduleScreen(p *service.Projection) (string, *models.InlineKeyboardMarkup) {
	mode := p.Period.Mode
	offset := p.Period.Offset

	label := "Эта неделя"
	otherMode, otherLabel := service.PeriodMonth, "📆 Месяц"
	if mode == service.PeriodMonth {
		label = "Этот месяц"
		otherMode, otherLabel = service.PeriodWeek, "🗓 Неделя"
	}
	if offset != 0 {
		label = fmt.Sprintf("%+d", offset)
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.PeriodNavigation(
			label,
			ScheduleData(PrefixSchedule, p.TeacherID, mode, offset-1),
			ScheduleData(PrefixSchedule, p.TeacherID, mode, offset+1),
		)...).
		Row(
			keyboard.Button(otherLabel, ScheduleData(PrefixSchedule, p.TeacherID, otherMode, 0)),
			keyboard.Button("📥 Excel", ScheduleData(PrefixExport, p.TeacherID, mode, offset)),
		)

	seen := make(map[uuid.UUID]bool)
	var buttons []models.InlineKeyboardButton
	for _, row := range p.Rows {
		if seen[row.BookingID] || len(buttons) >= maxBookingButtons {
			continue
		}
		seen[row.BookingID] = true
		buttons = append(buttons, keyboard.Button(
			fmt.Sprintf("✏️ %s %s", row.StudentName, formatting.FormatShortDate(row.WeekStart)),
			BookingData(PrefixBooking, row.BookingID),
		))
	}
	kb.Grid(2, buttons...)

	return formatting.FormatProjection(p), kb.Build()
}

// BuildBookingScreen формирует экран брони с кнопками дней
func BuildBookingScreen(b *model.Booking, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	var days []models.InlineKeyboardButton
	for _, day := range b.WeeklySchedule.ScheduledDays() {
		code := b.SessionStatus[day].Status
		days = append(days, keyboard.Button(
			fmt.Sprintf("%s %s", formatting.GetWeekdayShort(day), formatting.GetSessionStatusDisplay(code).Emoji),
			DayData(b.ID, day),
		))
	}

	kb := keyboard.NewBuilder().
		Grid(4, days...).
		Row(keyboard.Button("🗑 Удалить бронь", BookingData(PrefixDelete, b.ID))).
		AddBackButton(ScheduleData(PrefixSchedule, b.TeacherID, service.PeriodWeek, weekOffset(b.WeekStartDate, loc)))

	return formatting.FormatBooking(b, loc), kb.Build()
}

// BuildDayStatusPicker формирует выбор кода занятия для дня брони
func BuildDayStatusPicker(b *model.Booking, day model.Weekday, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	current := b.SessionStatus[day]

	text := fmt.Sprintf(
		"👤 <b>%s</b>\n%s, %s\n\nТекущий статус: %s %s\n\nВыберите новый статус:",
		html.EscapeString(b.StudentName),
		formatting.GetWeekdayName(day),
		formatting.FormatDate(b.DateOf(day).In(loc)),
		formatting.GetSessionStatusDisplay(current.Status).Emoji,
		formatting.GetSessionStatusDisplay(current.Status).Text,
	)

	var codes []models.InlineKeyboardButton
	for _, code := range model.SessionCodes {
		label := fmt.Sprintf("%s %s", formatting.GetSessionStatusDisplay(code).Emoji, code)
		if code == current.Status {
			label = "• " + label
		}
		codes = append(codes, keyboard.Button(label, CodeData(b.ID, day, code)))
	}

	kb := keyboard.NewBuilder().
		Grid(4, codes...).
		AddBackButton(BookingData(PrefixBooking, b.ID))

	return text, kb.Build()
}

// BuildDeleteConfirmScreen формирует подтверждение удаления брони
func BuildDeleteConfirmScreen(b *model.Booking, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"🗑 Удалить бронь <b>%s</b> на неделю %s?\n\nСчётчик броней учителя уменьшится.",
		html.EscapeString(b.StudentName),
		formatting.FormatWeekRange(b.WeekStartDate.In(loc), b.WeekEndDate.In(loc)),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.ConfirmButton(BookingData(PrefixDeleteConfirm, b.ID)),
			keyboard.CancelButton(BookingData(PrefixBooking, b.ID)),
		)

	return text, kb.Build()
}

// weekOffset смещение недели брони относительно текущей недели
func weekOffset(weekStart time.Time, loc *time.Location) int {
	current := model.StartOfWeek(time.Now().In(loc))
	start := model.StartOfWeek(weekStart.In(loc))
	return int(start.Sub(current).Round(24*time.Hour).Hours()) / (24 * 7)
}
