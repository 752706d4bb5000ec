package cmd

import (
	"os"

	"github.com/benedict-erwin/shop-directory/config"
	asynqPkg "github.com/benedict-erwin/shop-directory/pkg/asynq"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shop-directory",
	Short: "Shop Directory HTTP Service",
	Long:  `Shop Directory HTTP Service for shops, deals, gateways and beacons`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Failed to execute command")
		os.Exit(1)
	}
}

// bootstrap initializes all application dependencies before any command runs
func bootstrap() {
	// Initialize config
	if err := config.Init(); err != nil {
		panic(err)
	}
	cfg := config.Get()

	// Initialize logger
	logger.Init(cfg.App.Timezone, cfg.App.Env)

	// Initialize utils
	if err := utils.InitTimezone(cfg.App.Timezone); err != nil {
		logger.Error().Err(err).Msg("Timezone initialization failed")
		panic(err)
	}

	// Initialize Redis (document store)
	if err := redis.Init(); err != nil {
		logger.Error().Err(err).Msg("Failed to initialize Redis")
		panic(err)
	}

	// Initialize asynq client
	if cfg.Asynq.Enabled {
		if err := asynqPkg.InitClient(); err != nil {
			logger.Error().Err(err).Msg("Failed to initialize Asynq client")
			// Continue without deal expiry scheduling
		}
	}
}

// init registers all commands
func init() {
	cobra.OnInitialize(bootstrap)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(adminCmd)
}
