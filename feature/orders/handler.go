package orders

import (
	"errors"

	"order-ledger/core/logger"
	"order-ledger/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the order routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Get("/", h.HandleList)
	group.Post("/sync", h.HandleSync)
	group.Get("/snapshots", h.HandleSnapshots)
}

// HandleList returns the ledger.
// @Summary List Orders
// @Description Returns every order ordered by delivery date, with the sum of the dollar amounts.
// @Tags orders
// @Produce json
// @Success 200 {object} Listing "Orders"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	listing, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Order listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(listing)
}

// HandleSync reconciles the ledger with the sheet.
// @Summary Synchronize Orders
// @Description Fetches the sheet and applies the minimal set of deletions, updates and insertions in one transaction.
// @Tags orders
// @Produce json
// @Param dry_run query bool false "Plan only, write nothing"
// @Param snapshot query string false "Replay an archived snapshot instead of fetching the sheet"
// @Success 200 {object} reconcile.RunReport "Run report, with a warning when the overdue notification failed"
// @Failure 422 {object} map[string]string "Malformed sheet row"
// @Failure 502 {object} map[string]string "Exchange rate unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	opts := SyncOptions{
		DryRun:   c.QueryBool("dry_run", false),
		Snapshot: c.Query("snapshot"),
	}
	l.Info("Triggering synchronization", zap.Bool("dry_run", opts.DryRun), zap.String("snapshot", opts.Snapshot))

	report, err := h.service.Sync(c.Context(), opts)
	if err == nil {
		return c.JSON(report)
	}

	var notifyErr *reconcile.NotifierError
	if errors.As(err, &notifyErr) && report != nil {
		l.Warn("Synchronization committed but notification failed", zap.Error(err))
		resp := *report
		resp.Warning = err.Error()
		return c.JSON(resp)
	}

	l.Error("Synchronization failed", zap.Error(err))
	return c.Status(syncStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// HandleSnapshots lists archived sheet snapshots.
// @Summary List Snapshots
// @Description Lists archived sheet snapshots, newest first.
// @Tags orders
// @Produce json
// @Success 200 {array} SnapshotInfo "Snapshots"
// @Failure 404 {object} map[string]string "Archive disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/snapshots [get]
func (h *Handler) HandleSnapshots(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	snapshots, err := h.service.Snapshots(c.Context())
	if errors.Is(err, ErrArchiveDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Snapshot listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if snapshots == nil {
		snapshots = []SnapshotInfo{}
	}
	return c.JSON(snapshots)
}

func syncStatus(err error) int {
	var parseErr *reconcile.ParseError
	switch {
	case errors.As(err, &parseErr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, reconcile.ErrRateUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrArchiveDisabled):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
