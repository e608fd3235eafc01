package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/analysis"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/config"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/handlers"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/logging"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/mcp"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/players"
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper"
	"github.com/sirupsen/logrus"
)

func main() {
	// A missing .env file is fine; the environment may already be set
	envErr := godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		logger.Debug("No .env file loaded")
	}

	leagueSettings, err := config.LoadLeagueSettings(cfg.League.SettingsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load league settings")
	}

	sleeperClient := sleeper.NewHTTPClient(logger,
		sleeper.WithBaseURL(cfg.Sleeper.BaseURL),
		sleeper.WithTimeout(cfg.Sleeper.Timeout),
	)

	playerCache := players.NewCache(sleeperClient, cfg.Players.CacheTTL, logger)
	stopRefresher := func() {}
	if cfg.Players.RefreshEnabled {
		day, err := cfg.Players.Weekday()
		if err != nil {
			logger.WithError(err).Fatal("Invalid player refresh day")
		}
		refresher, err := players.NewRefresher(playerCache, day, cfg.Players.RefreshHour, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create player refresher")
		}
		if err := refresher.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start player refresher")
		}
		stopRefresher = func() {
			if err := refresher.Stop(); err != nil {
				logger.WithError(err).Warn("Player refresher did not stop cleanly")
			}
		}
	}

	leagueData := analysis.NewLeagueDataService(sleeperClient, cfg.Sleeper.FetchWorkers, logger)
	analyzer := analysis.NewAnalyzer(leagueData, logger)
	awardsService := analysis.NewAwardsService(leagueData, playerCache, leagueSettings, cfg.Sleeper.FetchWorkers, logger)

	mcpServer := mcp.NewShouldaCouldaServer(
		handlers.NewAnalysisHandler(analyzer, logger),
		handlers.NewAwardsHandler(awardsService, logger),
		logger,
	)
	if mcpServer == nil {
		logger.Fatal("Failed to create MCP server")
	}

	logger.WithFields(logrus.Fields{
		"sleeper_base_url": cfg.Sleeper.BaseURL,
		"fetch_workers":    cfg.Sleeper.FetchWorkers,
		"leagues":          len(leagueSettings.Leagues),
	}).Info("Starting Sleeper Shoulda Coulda Woulda MCP Server...")

	err = server.ServeStdio(mcpServer)
	stopRefresher()
	if err != nil {
		logger.WithError(err).Error("Server failed")
		os.Exit(1)
	}
}
