package main

import (
	"os"

	"meteocal/core/logger"
	"meteocal/core/server"
)

func main() {
	defer logger.Sync()

	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}
