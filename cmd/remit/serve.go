// Serve command for the remit CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/remiteasy/ledger/internal/api"
	"github.com/remiteasy/ledger/internal/derive"
	"github.com/remiteasy/ledger/internal/engine"
)

var serveListen string

// shutdownTimeout bounds graceful shutdown once a signal arrives.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the ledger over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := appConfig.GetString(cfgKeyAuthSecret)
		if secret == "" {
			fail(exitUserError, "serve", fmt.Errorf("auth_secret is not set in config.yaml"))
		}

		listen := serveListen
		if listen == "" {
			listen = appConfig.GetString(cfgKeyListenAddr)
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "serve", err)
		}
		defer backend.Detach()

		log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		eng := engine.New(backend, derive.Addresser{}, engine.WithLogger(log))

		server := api.NewServer(eng, []byte(secret),
			api.WithLogger(log),
			api.WithRateLimit(appConfig.GetFloat64(cfgKeyRateLimitRPS)),
		)

		httpServer := &http.Server{
			Addr:              listen,
			Handler:           server.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", listen)
			errCh <- httpServer.ListenAndServe()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fail(exitSysError, "serve", err)
			}
		case sig := <-sigCh:
			log.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				fail(exitSysError, "serve", err)
			}
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default: listen_addr from config.yaml)")
}
