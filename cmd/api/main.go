package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/infrastructure/camera"
	"github.com/sent-robotics/robot-relay/internal/infrastructure/jsonlog"
	jwtinfra "github.com/sent-robotics/robot-relay/internal/infrastructure/jwt"
	s3infra "github.com/sent-robotics/robot-relay/internal/infrastructure/s3"
	"github.com/sent-robotics/robot-relay/internal/infrastructure/smtp"
	"github.com/sent-robotics/robot-relay/internal/infrastructure/sns"
	transporthttp "github.com/sent-robotics/robot-relay/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Notification log: loaded once, missing or corrupt files start empty.
	store := jsonlog.Open(cfg.LogFile)
	log.Printf("Notification log loaded: %d records (%s)", store.Len(), cfg.LogFile)

	// Messaging channel, disabled without a from/to pair.
	messenger, err := sns.NewMessenger(cfg)
	if err != nil {
		log.Fatalf("SNS messenger: %v", err)
	}

	// Capture archive, disabled without a bucket.
	archive, err := s3infra.NewArchive(cfg)
	if err != nil {
		log.Fatalf("capture archive: %v", err)
	}

	deps := &transporthttp.Deps{
		Store:       store,
		Mailer:      smtp.NewMailer(cfg),
		Messenger:   messenger,
		Archive:     archive,
		Camera:      camera.NewClient(cfg),
		JWTProvider: jwtinfra.NewProvider(cfg),
	}

	router := transporthttp.NewRouter(cfg, deps)

	// No WriteTimeout: /stream stays open for as long as the client
	// watches.
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.AppPort),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
