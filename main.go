package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"weather-skill/api"
	"weather-skill/datasource"
	"weather-skill/forecast"
	"weather-skill/providers/openweathermap"
	"weather-skill/skill"
	"weather-skill/speech"
)

func main() {
	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	envFile := flag.String("env", ".env", "Path to .env file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	flag.Parse()

	// Load environment variables from .env file
	envErr := datasource.LoadEnv(*envFile)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("WEATHER_LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	if envErr != nil {
		slog.Warn("could not load .env file", "path", *envFile, "err", envErr)
	}

	// Load configuration
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "path", *configFile, "err", err)
		os.Exit(1)
	}
	config.ApplyEnv()

	if config.APIKey == datasource.DefaultAPIKey {
		slog.Warn("no OpenWeatherMap API key configured, every query will fail")
	}

	var source datasource.ForecastSource = openweathermap.NewOpenWeatherMapForecastSource(config)
	if *enableRateLimiting {
		// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
		// Allow bursts of up to 5 requests
		source = datasource.NewRateLimitedForecastSource(source, 1.0, 5)
		slog.Info("applied rate limiting", "source", source.Name())
	}

	sk := skill.New(
		source,
		forecast.NewAggregator(),
		speech.NewComposer(config.DefaultLocation, speech.SystemChooser()),
	)

	server := api.NewServer(sk, *port)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	slog.Info("weather skill ready",
		"default_location", config.DefaultLocation,
		"units", config.Units,
		"base_url", config.BaseURL,
	)

	// Wait for shutdown signal
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	slog.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}

	slog.Info("shutdown complete")
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
