package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatrooms/api"
	"chatrooms/gateway"
	"chatrooms/internal"
	"chatrooms/moderation"
	"chatrooms/repositories"
	"chatrooms/runtime/workers"
	"chatrooms/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	// Defer will be executed before run() returns anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}

	// 3. Repositories & Services
	roomRepository := repositories.NewRoomRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log)
	userRepository := repositories.NewUserRepository(db)

	presence := services.NewPresenceDirectory(userRepository, log)
	// Presence rows describe live connections; none survive a restart.
	if err := presence.Purge(); err != nil {
		return fmt.Errorf("presence purge: %w", err)
	}

	words, err := moderation.LoadWords()
	if err != nil {
		return fmt.Errorf("censored words: %w", err)
	}
	log.Info("Censored dictionaries loaded", "languages", words.Languages, "words", len(words.Words))
	moderator, err := moderation.NewModerator(words.Words, charReplacement)
	if err != nil {
		return fmt.Errorf("moderator: %w", err)
	}

	roomService := services.NewRoomService(
		roomRepository, messageRepository, presence, &moderator, log,
		config.RoomIdleThreshold,
	)

	// 4. Transport & Fan-out
	hub := gateway.NewHub(log)
	fanout := services.NewFanout(hub, presence, roomService, log)
	handler := gateway.NewHandler(hub, presence, roomService, fanout, log)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Background workers under supervision
	reaper := workers.NewReaperWorker(roomService, fanout, log, config.ReapInterval)
	supervisor := workers.NewSupervisor(log)
	supervisor.Add(reaper)
	supervisorDone := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(supervisorDone)
	}()

	// 7. HTTP server (websocket endpoint + REST surface)
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(corsAllowAll)
	router.Get("/ws", handler.ServeWS)
	router.Mount("/user", api.NewUserHandler(presence, fanout, config.UploadDir, log).Routes())
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadDir))))
	router.Get("/healthz", internal.HealthHandler())

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: router}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting chatroom server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown was not clean", "error", err)
	}
	supervisor.Stop()
	<-supervisorDone
	if err := presence.Purge(); err != nil {
		log.Warn("Final presence purge failed", "error", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

// corsAllowAll mirrors the permissive CORS policy the frontend expects.
func corsAllowAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
