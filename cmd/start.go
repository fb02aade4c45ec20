package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"order-ledger/core/loader"
	"order-ledger/core/logger"
	"order-ledger/core/middleware/auth"
	"order-ledger/core/middleware/rayid"
	"order-ledger/feature/orders"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "order-ledger/docs/swagger"
)

// @title Order Ledger API
// @version 1.0
// @description Orders synchronized from the order spreadsheet, priced at the daily exchange rate.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the order ledger server",
	Long: `Starts the HTTP API and the scheduled synchronization.

The ledger is synchronized every sync.interval (SYNC_INTERVAL) and once at boot
when sync.on_start (SYNC_ON_START) is set.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	logg := a.log
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager()
	mgr.Register(orders.NewFeature(a.service, logg))

	// RayID must be first to trace everything.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	if a.cfg.Server.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	go a.service.Schedule(ctx, a.cfg.Sync.Interval, a.cfg.Sync.OnStart)

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server",
			zap.String("port", a.cfg.Server.Port),
			zap.Bool("auth", a.cfg.Server.AuthEnabled()),
		)
		errCh <- app.Listen(a.cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	return app.Shutdown()
}
