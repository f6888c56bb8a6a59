package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/zex-pages/pkg/config"
	"github.com/orgball2608/zex-pages/pkg/logger"
	"go.uber.org/fx"
)

type ServerOpts struct {
	fx.In

	LC      fx.Lifecycle
	Handler *Handler
	Logger  logger.Logger
	Config  *config.Config
}

// NewServer builds the operator HTTP server and binds it to the app lifecycle.
func NewServer(opts ServerOpts) *http.Server {
	log := opts.Logger.WithComponent("HTTP")

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           NewRouter(opts.Handler, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}

			log.Info("Starting server", "addr", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})

	return srv
}

var Module = fx.Module("api",
	fx.Provide(NewHandler, NewServer),
	fx.Invoke(func(*http.Server) {}),
)
