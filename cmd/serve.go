package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pathctx/pkg/completion"
	"pathctx/pkg/conf"
	"pathctx/pkg/listener"
	"pathctx/pkg/slog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves completions to editors over a websocket",
	Long: `Listens for websocket connections on /ws. Every text message is a
JSON request (complete, resolve or capabilities) answered with a JSON
response carrying the same id.

A complete request superseded by a newer one for the same buffer is
answered with "aborted": true.`,
	Args:         cobra.NoArgs,
	RunE:         runServe,
	SilenceUsage: true,
}

// Serve flags
var (
	sAddress      string
	sPort         int
	sServerHeader string
	sHttpVersion  bool
	sHttpHealth   bool
	sRemote       remoteFlags
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&sAddress, "address", conf.DefaultAddress, "Server will bind to this address")
	serveCmd.Flags().IntVar(&sPort, "port", conf.DefaultPort, "port where Server will listen")
	serveCmd.Flags().StringVar(&sServerHeader, "http-server-header", "", "Sets a server header value")
	serveCmd.Flags().BoolVar(&sHttpVersion, "http-version", false, "Enables /version HTTP path")
	serveCmd.Flags().BoolVar(&sHttpHealth, "http-health", false, "Enables /health HTTP path")
	sRemote.register(serveCmd.Flags())
	conf.RegisterFlags(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fsys, env, fsCloser, err := sRemote.open(ctx, log)
	if err != nil {
		return err
	}
	defer func() { _ = fsCloser.Close() }()

	srv := listener.NewServer(completion.NewSource(fsys, env, log), cfg, log)
	httpSrv := &http.Server{
		Addr: net.JoinHostPort(sAddress, strconv.Itoa(sPort)),
		Handler: srv.Handler(&listener.RouterConfig{
			ServerHeader: sServerHeader,
			HealthOn:     sHttpHealth,
			VersionOn:    sHttpVersion,
		}),
		ReadHeaderTimeout: listener.HandshakeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoWith("Listening",
			slog.F("address", httpSrv.Addr),
			slog.F("remote", sRemote.target))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listener failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
