package app

import (
	"context"
	"digit_slot/internal/config"
	"digit_slot/pkg/token"
	"errors"
	"log"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) init() {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()
}

// Run Запускает HTTP сервер и ждет отмены ctx
func (s *App) Run(ctx context.Context) error {
	s.init()
	defer s.ServiceProvider.Close()

	r := s.ServiceProvider.Router(ctx)
	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server at %s (wallet mode: %s)", srv.Addr, s.ServiceProvider.WalletCfg().Mode())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// IssueToken Токен игрока для локальной разработки. Ключ берется из ACCESS_TOKEN
func (s *App) IssueToken(playerID int) (string, error) {
	s.init()
	cfg := s.ServiceProvider.JWTCfg()
	return token.GenerateAccessToken(playerID, cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
}
