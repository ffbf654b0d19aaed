package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/controller/callbacks"
	"github.com/Freeeeeet/tutoring_office/internal/controller/handlers"
	"github.com/Freeeeeet/tutoring_office/internal/controller/state"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// dialogTTL время жизни незаконченного диалога оператора
const dialogTTL = 30 * time.Minute

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	operatorOnly    bot.Middleware
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	directoryService *service.DirectoryService,
	reconciler handlers.Reconciler,
	isOperator func(telegramID int64) bool,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager(dialogTTL)

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		bookingService,
		scheduleService,
		directoryService,
		reconciler,
		stateManager,
		location,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		bookingService,
		scheduleService,
		directoryService,
		stateManager,
		location,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		operatorOnly:    handlers.OperatorOnly(isOperator, logger),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	command := func(pattern string, matchType bot.MatchType, f bot.HandlerFunc) {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, pattern, matchType, f, c.operatorOnly)
	}

	command("/start", bot.MatchTypeExact, c.handlers.HandleStart)
	command("/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	command("/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Справочники
	command("/teachers", bot.MatchTypeExact, c.handlers.HandleTeachers)
	command("/students", bot.MatchTypeExact, c.handlers.HandleStudents)
	command("/addteacher", bot.MatchTypeExact, c.handlers.HandleAddTeacherStart)
	command("/deleteteacher", bot.MatchTypePrefix, c.handlers.HandleDeleteTeacher)

	// Брони и расписание
	command("/newbooking", bot.MatchTypeExact, c.handlers.HandleNewBookingStart)
	command("/booking", bot.MatchTypePrefix, c.handlers.HandleBooking)
	command("/deletebooking", bot.MatchTypePrefix, c.handlers.HandleDeleteBooking)
	command("/schedule", bot.MatchTypePrefix, c.handlers.HandleSchedule)
	command("/export", bot.MatchTypePrefix, c.handlers.HandleExport)
	command("/reconcile", bot.MatchTypeExact, c.handlers.HandleReconcile)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	command("", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix,
		c.callbackHandler.HandleCallbackQuery, c.operatorOnly)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "teachers", Description: "👩‍🏫 Учителя"},
		{Command: "students", Description: "🎒 Ученики"},
		{Command: "addteacher", Description: "➕ Добавить учителя"},
		{Command: "newbooking", Description: "📝 Новая бронь"},
		{Command: "schedule", Description: "🗓 Расписание учителя"},
		{Command: "export", Description: "📥 Выгрузка в Excel"},
		{Command: "reconcile", Description: "🔄 Сверка статусов"},
		{Command: "cancel", Description: "❌ Отменить диалог"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и периодически чистит брошенные диалоги
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")

	go func() {
		ticker := time.NewTicker(dialogTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.stateManager.Cleanup(); n > 0 {
					c.logger.Debug("Expired dialogs removed", zap.Int("count", n))
				}
			}
		}
	}()

	c.bot.Start(ctx)
	return nil
}
