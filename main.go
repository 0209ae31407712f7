package main

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-classicbox/cmd"
	"github.com/deploymenttheory/go-classicbox/internal/config"
	"github.com/deploymenttheory/go-classicbox/internal/logger"
)

func main() {
	// App configuration file can be specified via the environment
	configFile := os.Getenv("CLASSICBOX_CONFIG")

	if err := config.Initialize(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing configuration: %v\n", err)
		os.Exit(1)
	}

	if err := initLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	err := cmd.Execute()

	// Ensure logs are flushed before exit
	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// initLogging initializes the logger based on configuration settings
func initLogging() error {
	logConfig := logger.LoggerConfig{
		Debug:     config.Instance.Debug,
		LogFormat: config.Instance.LogFormat,
		LogFile:   config.Instance.LogFile,
	}
	return logger.InitLogger(logConfig)
}
