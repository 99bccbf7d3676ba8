package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/sermas-study-bot/internal/config"
	"github.com/aliskhannn/sermas-study-bot/internal/delivery/telegram"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/flashcard"
	"github.com/aliskhannn/sermas-study-bot/internal/export"
	"github.com/aliskhannn/sermas-study-bot/internal/infra/sqlite"
	sqliterepo "github.com/aliskhannn/sermas-study-bot/internal/infra/sqlite/repository"
	"github.com/aliskhannn/sermas-study-bot/internal/logger"
	"github.com/aliskhannn/sermas-study-bot/internal/repository"
	"github.com/aliskhannn/sermas-study-bot/internal/service"
	"github.com/aliskhannn/sermas-study-bot/internal/storage"
	"github.com/aliskhannn/sermas-study-bot/internal/theme"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot api", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Iniciar el bot"},
		{Command: "temas", Description: "Temario completo o búsqueda (/temas texto)"},
		{Command: "tema", Description: "Abrir un tema (/tema 3)"},
		{Command: "progreso", Description: "Panel de progreso"},
		{Command: "tarjetas", Description: "Repasar con tarjetas"},
		{Command: "ajustes", Description: "Modo oscuro y tamaño de texto"},
		{Command: "informe", Description: "Descargar el informe de progreso"},
		{Command: "reiniciar", Description: "Borrar el progreso"},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Local storage.
	db, err := sqlite.Open(ctx, cfg.DB.Path)
	if err != nil {
		lg.Fatal("failed to open database", zap.String("path", cfg.DB.Path), zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	stateRepo := sqliterepo.NewStateRepository(db)

	topicRepo, err := repository.NewTopicRepository(cfg.CatalogJSONPath)
	if err != nil {
		lg.Fatal("failed to load catalog", zap.String("path", cfg.CatalogJSONPath), zap.Error(err))
	}
	lg.Info("catalog loaded", zap.Int("topics", topicRepo.Total()))

	// Services.
	switcher := theme.NewSwitcher(lg)
	progressStore := service.NewProgressStore(stateRepo, switcher, lg)
	state := progressStore.Load(ctx)
	lg.Info("state loaded",
		zap.Int("records", len(state.Progress)),
		zap.Bool("dark_mode", state.DarkMode),
		zap.Int("text_size", state.TextSize),
	)

	topicService := service.NewTopicService(topicRepo, progressStore)
	settingsService := service.NewSettingsService(progressStore)

	flashcardService := service.NewFlashcardService(
		topicRepo,
		progressStore,
		storage.NewSessionStorage(),
		flashcard.BuildOptions{
			FeaturedTopicID: cfg.Flashcards.FeaturedTopicID,
			GenericLimit:    cfg.Flashcards.GenericLimit,
			AnswerPreview:   cfg.Flashcards.AnswerPreview,
		},
		lg,
	)

	layout := export.DefaultLayoutOptions()
	layout.PageHeight = cfg.Export.PageHeight
	layout.WrapWidth = cfg.Export.WrapWidth
	exportService := service.NewExportService(topicRepo, progressStore, switcher, layout, lg)

	handler := telegram.NewHandler(
		bot,
		cfg.OwnerChatID,
		lg,
		topicService,
		flashcardService,
		settingsService,
		exportService,
		service.NewResetService(progressStore, lg),
		storage.NewReminderStorage(),
		switcher,
	)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Reminders.Enabled {
		loc, err := cfg.Reminders.Location()
		if err != nil {
			lg.Fatal("invalid reminder timezone", zap.Error(err))
		}

		reminderService := service.NewReminderService(
			progressStore,
			topicRepo,
			cfg.OwnerChatID,
			cfg.Reminders.Schedule,
			loc,
			lg,
		)
		reminderService.SetNotifier(handler)

		g.Go(func() error {
			return reminderService.Start(gctx)
		})
	}

	g.Go(func() error {
		return handler.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown complete")
}
