package cmd

import (
	"github.com/benedict-erwin/shop-directory/config"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/server"
	"github.com/spf13/cobra"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP Server",
		Long:  `Starts the Shop Directory HTTP Server under overseer`,
		Run: func(cmd *cobra.Command, args []string) {
			runServer("serveCmd")
		},
	}

	devCmd = &cobra.Command{
		Use:   "dev",
		Short: "Start HTTP Server without overseer",
		Long:  `Starts the Shop Directory HTTP Server in the foreground, for hot reload tooling`,
		Run: func(cmd *cobra.Command, args []string) {
			runServer("devCmd")
		},
	}
)

func runServer(scope string) {
	log := logger.WithScope(scope)

	deps, err := newRouteDeps()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire services")
	}
	if err := server.Start(config.Get().App.Port, deps); err != nil {
		log.Error().Err(err).Msg("Failed to start server")
	}
}
