package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gamecafe/backend/libs/logging"
	"gamecafe/backend/services/station-agent/internal/agent"
	"gamecafe/backend/services/station-agent/internal/clients"
	"gamecafe/backend/services/station-agent/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger("station-agent")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	httpClient := clients.NewDefaultHTTPClient(cfg.Coordinator.Timeout)
	client := clients.NewCoordinatorClient(cfg.Coordinator.URL, httpClient)

	a := agent.New(
		client,
		cfg.Station.Name,
		cfg.Station.IPAddress,
		cfg.Station.Port,
		cfg.HourlyRate(),
		cfg.HeartbeatInterval,
		logger,
	)

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("agent stopped with error", zap.Error(err))
	}
}
