// Command moneyctl converts and formats amounts with the transfer money
// package, outside the Encore runtime.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
