package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
)

// FormatPeriodTitle заголовок отчётного периода
func FormatPeriodTitle(p service.Period) string {
	if p.Mode == service.PeriodMonth {
		return fmt.Sprintf("📆 %s %d", GetMonthName(p.Start.Month()), p.Start.Year())
	}
	return fmt.Sprintf("🗓 Неделя %s", FormatWeekRange(p.Start, p.End))
}

// FormatProjection форматирует расписание учителя за период
func FormatProjection(p *service.Projection) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "👩‍🏫 <b>%s</b>\n%s\n\n", html.EscapeString(p.TeacherName), FormatPeriodTitle(p.Period))

	if len(p.Rows) == 0 {
		sb.WriteString("Занятий в этом периоде нет.")
		return sb.String()
	}

	for i, row := range p.Rows {
		fmt.Fprintf(&sb, "%d. <b>%s</b> · %s · %s кл.\n",
			i+1,
			html.EscapeString(row.StudentName),
			html.EscapeString(row.Subject),
			html.EscapeString(row.Grade),
		)
		fmt.Fprintf(&sb, "   Неделя %s\n", FormatWeekRange(row.WeekStart, row.WeekEnd))

		for _, day := range row.Days {
			sb.WriteString("   " + FormatProjectedDay(day) + "\n")
		}

		fmt.Fprintf(&sb, "   💰 %s\n\n", FormatSplit(row.WeekEarnings, row.CompanyEarnings))
	}

	sessions := 0
	for _, n := range p.Totals.Sessions {
		sessions += n
	}

	fmt.Fprintf(&sb, "<b>Итого:</b> %d %s\n", sessions, PluralizeSessions(sessions))
	fmt.Fprintf(&sb, "💰 %s", FormatSplit(p.Totals.TeacherEarnings, p.Totals.CompanyEarnings))

	return sb.String()
}

// FormatProjectedDay одна строка занятия: день, дата, код, длительность
func FormatProjectedDay(day service.ProjectedDay) string {
	display := GetSessionStatusDisplay(day.Status)
	line := fmt.Sprintf("%s %s %s — %s %s, %s",
		display.Emoji,
		GetWeekdayShort(day.Weekday),
		FormatShortDate(day.Date),
		day.Status,
		display.Text,
		FormatHours(day.Duration),
	)
	if day.ScheduleKey != day.Weekday {
		line += fmt.Sprintf(" (по расписанию %s)", GetWeekdayShort(day.ScheduleKey))
	}
	return line
}

// FormatBooking форматирует карточку брони с раскладкой по дням
func FormatBooking(b *model.Booking, loc *time.Location) string {
	var sb strings.Builder

	display := GetBookingStatusDisplay(b.Status)

	fmt.Fprintf(&sb, "📘 <b>%s</b> · %s · %s кл.\n",
		html.EscapeString(b.StudentName),
		html.EscapeString(b.Subject),
		html.EscapeString(b.Grade),
	)
	fmt.Fprintf(&sb, "👪 %s (%s)\n", html.EscapeString(b.ParentName), html.EscapeString(b.ParentFbName))
	if b.ContactNumber != "" || b.Email != "" {
		fmt.Fprintf(&sb, "📞 %s %s\n", html.EscapeString(b.ContactNumber), html.EscapeString(b.Email))
	}
	fmt.Fprintf(&sb, "🗓 Неделя %s\n", FormatWeekRange(b.WeekStartDate.In(loc), b.WeekEndDate.In(loc)))
	fmt.Fprintf(&sb, "📊 Статус: %s %s\n", display.Emoji, display.Text)
	fmt.Fprintf(&sb, "💰 За неделю: %s\n\n", FormatAmount(b.TotalEarningsPerWeek))

	for _, day := range model.Weekdays {
		schedule := b.WeeklySchedule[day]
		status := b.SessionStatus[day]
		if !schedule.IsScheduled && status.Status == model.SessionNone {
			continue
		}

		sd := GetSessionStatusDisplay(status.Status)
		date := "без даты"
		if status.Date != nil {
			date = FormatShortDate(status.Date.In(loc))
		}
		fmt.Fprintf(&sb, "%s %s %s — %s, %s\n",
			sd.Emoji,
			GetWeekdayShort(day),
			date,
			status.Status,
			FormatHours(schedule.Duration),
		)
	}

	fmt.Fprintf(&sb, "\n<code>%s</code>", b.ID)
	return sb.String()
}

// FormatTeacherLine строка списка учителей
func FormatTeacherLine(t *model.Teacher) string {
	display := GetActivityDisplay(t.Status)
	line := fmt.Sprintf("%s <b>%d</b> · %s · %d %s",
		display.Emoji,
		t.ID,
		html.EscapeString(t.Name),
		t.TotalBookings,
		PluralizeBookings(t.TotalBookings),
	)
	if !t.IsActive() && t.InactiveDays > 0 {
		line += fmt.Sprintf(" · неактивен %d %s", t.InactiveDays, PluralizeDays(t.InactiveDays))
	}
	return line
}

// FormatStudentLine строка списка учеников
func FormatStudentLine(s *model.Student) string {
	display := GetActivityDisplay(s.Status)
	line := fmt.Sprintf("%s %s (%s) · %s кл.",
		display.Emoji,
		html.EscapeString(s.StudentName),
		html.EscapeString(s.ParentFbName),
		html.EscapeString(s.Grade),
	)
	if !s.IsActive() && s.InactiveDays > 0 {
		line += fmt.Sprintf(" · неактивен %d %s", s.InactiveDays, PluralizeDays(s.InactiveDays))
	}
	return line
}
