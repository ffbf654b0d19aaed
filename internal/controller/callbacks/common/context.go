package common

import (
	"context"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext данные одного нажатия кнопки в консоли
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	hc := &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    messageOf(callback),
		TelegramID: callback.From.ID,
	}
	if hc.Message != nil {
		hc.ChatID = hc.Message.Chat.ID
	}
	return hc
}

// Answer снимает "часики" с кнопки, пустой текст ничего не показывает
func (hc *HandlerContext) Answer(text string) {
	answerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text, false)
}

// AnswerAlert показывает текст во всплывающем окне
func (hc *HandlerContext) AnswerAlert(text string) {
	answerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text, true)
}

// EditMessage заменяет экран, на котором нажата кнопка
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

// ShowScreen заменяет экран и отвечает на callback
// Ошибка редактирования только логируется: оператор увидит старый экран и нажмёт ещё раз
func (hc *HandlerContext) ShowScreen(text string, keyboard *models.InlineKeyboardMarkup, answer string) {
	if err := hc.EditMessage(text, keyboard); err != nil {
		hc.Handler.Logger.Error("Failed to edit screen",
			zap.String("data", hc.Callback.Data),
			zap.Error(err))
	}
	hc.Answer(answer)
}
