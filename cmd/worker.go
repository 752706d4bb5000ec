package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/shop-directory/internal/jobs"
	asynqPkg "github.com/benedict-erwin/shop-directory/pkg/asynq"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage background job workers",
	Long:  `Manage the Asynq worker that expires deals at their end date`,
}

// Subcommands
var (
	workerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start background job worker",
		Long:  `Start Asynq worker to process background jobs`,
		Run: func(cmd *cobra.Command, args []string) {
			startWorker()
		},
	}

	workerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List worker configurations",
		Run: func(cmd *cobra.Command, args []string) {
			listWorkers()
		},
	}

	workerSetCmd = &cobra.Command{
		Use:   "set [worker-name] [percentage] [task-types]",
		Short: "Set worker configuration",
		Long:  `Set worker percentage and task types. Task types should be comma-separated.`,
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			setWorker(args[0], args[1], args[2])
		},
	}

	workerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show current queue status",
		Run: func(cmd *cobra.Command, args []string) {
			showStatus()
		},
	}

	workerResetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset to default configuration",
		Run: func(cmd *cobra.Command, args []string) {
			resetConfig()
		},
	}
)

// startWorker starts the Asynq worker server with graceful shutdown
func startWorker() {
	log := logger.WithScope("startWorker")

	services, _, err := newServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire services")
	}

	server, err := asynqPkg.InitServer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Asynq server")
	}
	mux := asynq.NewServeMux()

	if _, err := jobs.RegisterHandlers(mux, jobs.Deps{Deals: services.Deals}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register job handlers")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	// Heartbeat lets `worker status` and the health check see a live worker
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				asynqPkg.SetWorkerHeartbeat()
			case <-done:
				return
			}
		}
	}()

	go func() {
		log.Info().Msg("Starting Asynq worker server...")
		asynqPkg.SetServerRunning(true)
		asynqPkg.SetWorkerHeartbeat()

		if err := server.Run(mux); err != nil {
			asynqPkg.SetServerRunning(false)
			log.Fatal().Err(err).Msg("Failed to start worker server")
		}
		asynqPkg.SetServerRunning(false)
	}()

	sig := <-sigChan
	close(done)
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal, waiting for running tasks to complete (max 30s)...")

	asynqPkg.CloseServer()
	asynqPkg.ClearServerReference()

	log.Info().Msg("Worker server stopped gracefully")
}

// listWorkers renders worker configurations as a table
func listWorkers() {
	asynqPkg.InitConcurrency()

	workers := asynqPkg.GetWorkers()
	queues := asynqPkg.GenerateQueues()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Queue", "Percentage", "Count", "Task Types"})
	for _, worker := range workers {
		table.Append([]string{
			worker.Name,
			fmt.Sprintf("%d%%", worker.Percentage),
			strconv.Itoa(queues[worker.Name]),
			strings.Join(worker.TaskTypes, ", "),
		})
	}
	table.Render()

	fmt.Printf("\nConcurrency: %d workers\n", asynqPkg.GetConcurrency())
}

// setWorker updates worker configuration with new percentage and task types
func setWorker(name, percentageStr, taskTypesStr string) {
	asynqPkg.InitConcurrency()

	percentage, err := strconv.Atoi(percentageStr)
	if err != nil {
		fmt.Printf("Invalid percentage: %s\n", percentageStr)
		return
	}
	if percentage < 0 || percentage > 100 {
		fmt.Printf("Percentage must be between 0 and 100\n")
		return
	}

	taskTypes := []string{}
	if taskTypesStr != "" {
		for _, t := range strings.Split(taskTypesStr, ",") {
			taskTypes = append(taskTypes, strings.TrimSpace(t))
		}
	}

	asynqPkg.SetWorker(name, percentage, taskTypes)
	fmt.Printf("Worker '%s' updated: %d%% with %d task types\n", name, percentage, len(taskTypes))
}

// showStatus displays the queue weights and whether a worker is alive
func showStatus() {
	asynqPkg.InitConcurrency()

	queues := asynqPkg.GenerateQueues()
	names := make([]string, 0, len(queues))
	for name := range queues {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Active Queue Configuration:\n")
	total := 0
	for _, name := range names {
		fmt.Printf("  %s: %d weight\n", name, queues[name])
		total += queues[name]
	}
	fmt.Printf("\nConcurrency: %d workers\n", asynqPkg.GetConcurrency())
	fmt.Printf("Total Weight: %d\n", total)

	if asynqPkg.IsServerRunning() {
		fmt.Println("Worker: running")
	} else {
		fmt.Println("Worker: stopped")
	}
}

// resetConfig regenerates the worker configuration from the registered jobs
func resetConfig() {
	asynqPkg.InitConcurrency()

	asynqPkg.ResetToDefault()
	fmt.Println("Worker configuration reset to registered job defaults")
}

// init registers all worker subcommands
func init() {
	workerCmd.AddCommand(workerStartCmd)
	workerCmd.AddCommand(workerListCmd)
	workerCmd.AddCommand(workerSetCmd)
	workerCmd.AddCommand(workerStatusCmd)
	workerCmd.AddCommand(workerResetCmd)
}
