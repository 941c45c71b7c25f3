package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/otelx"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the booking API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			shutdownTracing, err := otelx.Setup(ctx, otelx.Config{
				Enabled:      cfg.OTelEnabled,
				ServiceName:  otelx.ServiceName,
				OTLPEndpoint: cfg.OTelEndpoint,
			})
			if err != nil {
				return err
			}
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer scancel()
				_ = shutdownTracing(sctx)
			}()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if migrateUp {
				if err := dbpkg.Migrate(db); err != nil {
					return err
				}
			}

			var rdb *redis.Client
			if cfg.RedisURL != "" {
				rdb, err = cache.NewClient(cfg.RedisURL)
				if err != nil {
					return err
				}
				defer rdb.Close()
				if err := rdb.Ping(ctx).Err(); err != nil {
					logger.Warn("redis unreachable, continuing", "err", err)
				}
			}

			var publisher domain.EventPublisher = events.Noop{}
			if brokers := events.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
				kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
				defer kp.Close()
				publisher = kp
			}

			auditDispatcher := audit.NewDispatcher(audit.New(db))
			defer auditDispatcher.Close()

			if !cfg.LogDebug {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())

			drain := routes.RegisterRoutes(r, db, cfg, routes.Infra{
				Redis:  rdb,
				Events: publisher,
				Audit:  auditDispatcher,
			})
			defer drain()

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           otelhttp.NewHandler(r, otelx.ServiceName),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server running", "addr", cfg.Addr())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer scancel()
			return srv.Shutdown(sctx)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	return cmd
}
