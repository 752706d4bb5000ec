package main

import (
	"os"

	"github.com/benedict-erwin/shop-directory/cmd"
	"github.com/jpillora/overseer"
)

// main starts the application, under overseer for zero-downtime restarts when serving
func main() {
	if len(os.Args) < 2 {
		cmd.Execute()
		return
	}

	switch {
	case os.Args[1] == "serve":
		// HTTP server with overseer (:3000)
		overseer.Run(overseer.Config{
			Program: func(state overseer.State) {
				cmd.Execute()
			},
			Address:          ":3000",
			RestartSignal:    overseer.SIGUSR2,
			TerminateTimeout: 30,
		})
	case os.Args[1] == "worker" && len(os.Args) >= 3 && os.Args[2] == "start":
		// Worker with overseer (:3001)
		overseer.Run(overseer.Config{
			Program: func(state overseer.State) {
				cmd.Execute()
			},
			Address:          ":3001",
			RestartSignal:    overseer.SIGUSR2,
			TerminateTimeout: 30,
		})
	default:
		// dev and CLI commands without overseer
		cmd.Execute()
	}
}
