package config

import (
	"github.com/joho/godotenv"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
)

// LoadEnv reads a .env file if one is present. The file is optional; real
// deployments use the process environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Logger.Debug().Msg(".env not found, using system environment variables")
	}
}
