package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netbattle_api/internal/api"
	"netbattle_api/internal/app/service"
	"netbattle_api/internal/app/worker"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/repository"
	"netbattle_api/internal/platform/config"
	"netbattle_api/internal/platform/database"
	"netbattle_api/internal/platform/mail"
	"netbattle_api/internal/platform/queue"
	"netbattle_api/internal/platform/session"
)

func main() {
	config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	database.Connect()
	defer database.Close()
	logger.Info("database connected")

	queue.ConnectRedis()
	defer queue.CloseRedis()
	logger.Info("redis connected")

	userRepo := repository.NewMongoUserRepository(database.DB)
	adminRepo := repository.NewMongoAdminUserRepository(database.DB)
	cardRepo := repository.NewMongoCardRepository(database.DB)
	cardModelRepo := repository.NewMongoCardModelRepository(database.DB)
	comboRepo := repository.NewMongoCardComboRepository(database.DB)
	folderRepo := repository.NewMongoFolderRepository(database.DB)
	publicFolderRepo := repository.NewMongoPublicFolderRepository(database.DB)
	keyItemRepo := repository.NewMongoKeyItemRepository(database.DB)
	productRepo := repository.NewMongoProductRepository(database.DB)
	txRepo := repository.NewMongoTxRepository(database.DB)
	resetTokenRepo := repository.NewMongoResetTokenRepository(database.DB)

	mask := security.NewMask(config.AppConfig.SigningKey, config.AppConfig.MaskTokenTTL)
	sessions := session.NewStore(
		session.NewRedisKV(queue.RDB),
		"netbattle_session",
		config.AppConfig.SessionSecret,
		config.AppConfig.SessionDuration,
	)
	mailQueue := mail.NewRedisQueue(queue.RDB, config.AppConfig.MailQueueName)

	svc := api.Services{
		Auth:  service.NewAuthService(userRepo, adminRepo),
		Reset: service.NewResetService(userRepo, resetTokenRepo, mailQueue, config.AppConfig.RecoveryClientURL, config.AppConfig.RecoverySaltRounds, logger),
		User:  service.NewUserService(userRepo),
		Admin: service.NewAdminService(adminRepo),
		Card:  service.NewCardService(cardRepo, cardModelRepo),
		Combo: service.NewComboService(comboRepo),
		Folder: service.NewFolderService(folderRepo, publicFolderRepo, service.FolderLimits{
			MaxNameLength: config.AppConfig.MaxFolderNameLength,
			MaxCards:      config.AppConfig.MaxCardsPerFolder,
		}),
		KeyItem: service.NewKeyItemService(keyItemRepo, mask, config.AppConfig.MaxKeyItemNameLength),
		Product: service.NewProductService(productRepo, userRepo, txRepo, keyItemRepo),
	}

	mailer, err := mail.NewSMTPMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPassword,
		config.AppConfig.MailFrom,
	)
	if err != nil {
		log.Fatalf("Could not configure mailer: %v", err)
	}
	mailWorker := worker.NewMailWorker(queue.RDB, config.AppConfig.MailQueueName, mailer, logger)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go mailWorker.Start(workerCtx)

	router := api.NewRouter(svc, sessions, mask, logger)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop

	logger.Info("shutting down server")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	logger.Info("server and worker stopped")
}
