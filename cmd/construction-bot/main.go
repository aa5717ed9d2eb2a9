package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vxtzo/telegram-construction-bot/internal/auth"
	"github.com/vxtzo/telegram-construction-bot/internal/bot"
	"github.com/vxtzo/telegram-construction-bot/internal/config"
	"github.com/vxtzo/telegram-construction-bot/internal/db"
	"github.com/vxtzo/telegram-construction-bot/internal/excel"
	httphandler "github.com/vxtzo/telegram-construction-bot/internal/http"
	"github.com/vxtzo/telegram-construction-bot/internal/http/middleware"
	"github.com/vxtzo/telegram-construction-bot/internal/logger"
	"github.com/vxtzo/telegram-construction-bot/internal/pdf"
	"github.com/vxtzo/telegram-construction-bot/internal/repository"
	"github.com/vxtzo/telegram-construction-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	objectRepo := repository.NewObjectRepository(database)
	expenseRepo := repository.NewExpenseRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	userRepo := repository.NewUserRepository(database)

	objectService := service.NewObjectService(objectRepo)
	expenseService := service.NewExpenseService(objectRepo, expenseRepo)
	companyService := service.NewCompanyService(companyRepo)
	reportService := service.NewReportService(objectRepo, companyRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(
		objectService,
		expenseService,
		companyService,
		reportService,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		log,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	tgBot, err := bot.New(cfg, userRepo, objectService, expenseService, reportService, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init telegram bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go tgBot.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting construction bot")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
