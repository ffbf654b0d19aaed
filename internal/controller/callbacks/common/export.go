package common

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_office/internal/report"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// SendProjectionExport отправляет расписание за период файлом Excel
func SendProjectionExport(ctx context.Context, b *bot.Bot, chatID int64, p *service.Projection) error {
	var buf bytes.Buffer
	if err := report.WriteProjection(&buf, p); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: report.FileName(p),
			Data:     &buf,
		},
		Caption:   formatting.FormatPeriodTitle(p.Period),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	return nil
}
