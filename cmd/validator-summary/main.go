package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/nodeset-org/validator-summary/pkg/summary"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	configFile = flag.String("config", "", "path to config file")
)

func main() {
	flag.Parse()

	_ = godotenv.Load() // load .env if present

	config := summary.DefaultConfig()
	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			log.Fatalf("could not read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			log.Fatalf("could not load config: %v", err)
		}
	}

	loggingConfig := zap.NewDevelopmentConfig()
	loggingConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if config.Logging != nil && config.Logging.Path != "" {
		loggingConfig.OutputPaths = append(loggingConfig.OutputPaths, config.Logging.Path)
	}

	zapLogger, err := loggingConfig.Build()
	if err != nil {
		log.Fatalf("could not open log file: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()
	logger := zapLogger.Sugar()

	if err := config.ApplyEnv(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	summarizer, err := summary.New(ctx, config, zapLogger)
	if err != nil {
		logger.Fatalf("could not start validator summary: %v", err)
	}

	if err := summarizer.Run(ctx, os.Stdout); err != nil {
		logger.Fatalf("could not generate validator summary: %v", err)
	}

	if err := summarizer.Shutdown(); err != nil {
		logger.Warnf("error shutting down API server: %v", err)
	}

	logger.Info("validator summary generated successfully")
}
