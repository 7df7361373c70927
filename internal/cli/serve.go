package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazypower/recall/internal/config"
	"github.com/lazypower/recall/internal/scheduler"
	"github.com/lazypower/recall/internal/seed"
	"github.com/lazypower/recall/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveNoSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoSeed, "no-seed", false, "start with an empty graph")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	graph := scheduler.NewGraph(cfg.Scheduler.DecayRate)
	if cfg.Seed && !serveNoSeed {
		seed.Apply(graph)
	}
	total := graph.TotalConcepts()

	srv := server.New(graph, VersionString())
	srv.StartDayTimer(time.Duration(cfg.Server.DayIntervalHours) * time.Hour)
	defer srv.Stop()

	addr := cfg.ListenAddr()
	if serveAddr != "" {
		addr = serveAddr
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "recall serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  concepts: %d, decay rate: %.2f\n", total, cfg.Scheduler.DecayRate)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
