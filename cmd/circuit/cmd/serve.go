package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCircuit/internal/api"
)

var (
	serveAddr       string
	serveSessionTTL time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP",
	Long: `Start an HTTP server exposing levels, board evaluation, oracle lookups
and play sessions.

Routes:
  GET  /levels
  GET  /levels/:n
  POST /evaluate
  GET  /oracle/:key
  POST /sessions
  GET  /sessions/:id
  DELETE /sessions/:id
  POST /sessions/:id/moves

Examples:
  circuit serve --addr :8080
  circuit serve --session-ttl 10m          # Drop sessions idle for 10 minutes
  CIRCUIT_STRATEGY=exhaustive circuit serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().DurationVar(&serveSessionTTL, "session-ttl", 30*time.Minute,
		"expire sessions idle for this long (0 keeps them forever)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	repo, err := loadLevels()
	if err != nil {
		return err
	}
	e, err := newEvaluator(cmd)
	if err != nil {
		return err
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(repo, e, nil, newLogger(cmd))
	srv := &http.Server{
		Addr:    serveAddr,
		Handler: server.Router(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go server.ExpireSessions(ctx, serveSessionTTL)

	errc := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s (%d levels)\n", serveAddr, repo.Len())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
