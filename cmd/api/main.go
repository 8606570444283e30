package main

import (
	"context"
	"os"

	"github.com/yigit/invigilate/internal/pkg/logger"
	"github.com/yigit/invigilate/internal/server"
)

// @title Invigilate API
// @version 1.0
// @description Exam invigilation scheduling: faculty timetables, exams, duty assignment and change requests

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
