package loadorder

import (
	"errors"

	"loadorder-manager/core/games"
	"loadorder-manager/core/locks"
	"loadorder-manager/core/logger"
	"loadorder-manager/feature/loadorder/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for load orders.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the load order routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/loadorder")
	group.Get("/games", h.HandleListGames)
	group.Post("/preview", h.HandlePreview)
	group.Get("/:profile", h.HandleGetOrder)
	group.Put("/:profile/order", h.HandleSetOrder)
	group.Put("/:profile/natives", h.HandleSetNatives)
	group.Post("/:profile/reconcile", h.HandleReconcile)
	group.Get("/:profile/locks", h.HandleGetLocks)
	group.Get("/:profile/locks/:identifier", h.HandleGetLock)
	group.Put("/:profile/locks/:identifier", h.HandleSetLock)
	group.Delete("/:profile/locks/:identifier", h.HandleClearLock)
}

// HandleListGames lists the supported games.
// @Summary List Games
// @Description List supported games and their native plugins.
// @Tags loadorder
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} games.Game
// @Router /loadorder/games [get]
func (h *Handler) HandleListGames(c *fiber.Ctx) error {
	ids := games.IDs()
	out := make([]games.Game, 0, len(ids))
	for _, id := range ids {
		g, _ := games.Lookup(id)
		out = append(out, g)
	}
	return c.JSON(out)
}

// HandleGetOrder returns the published order of a profile.
// @Summary Get Load Order
// @Description Get the published load order of a profile with its locks.
// @Tags loadorder
// @Security ApiKeyAuth
// @Produce json
// @Param profile path string true "Profile"
// @Success 200 {object} models.OrderResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /loadorder/{profile} [get]
func (h *Handler) HandleGetOrder(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	resp, err := h.service.Order(c.Context(), param(c, "profile"))
	if err != nil {
		l.Error("Failed to read load order", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(resp)
}

// HandleSetOrder replaces the automatic order of a profile.
// @Summary Set Load Order
// @Description Replace the automatically computed order. Locks are applied before publishing.
// @Tags loadorder
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param profile path string true "Profile"
// @Param body body models.SetOrderRequest true "Order"
// @Success 200 {object} models.OrderResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /loadorder/{profile}/order [put]
func (h *Handler) HandleSetOrder(c *fiber.Ctx) error {
	profile := param(c, "profile")
	l := logger.WithRayID(h.service.logger, c)

	var req models.SetOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	if err := h.service.SetOrder(profile, req.Entries); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	l.Info("Load order replaced", zap.String("profile", profile), zap.Int("entries", len(req.Entries)))

	return h.HandleGetOrder(c)
}

// HandleSetNatives replaces the native plugin list of a profile.
// @Summary Set Native Plugins
// @Description Replace the plugins that form the fixed prefix.
// @Tags loadorder
// @Security ApiKeyAuth
// @Accept json
// @Param profile path string true "Profile"
// @Param body body models.SetNativesRequest true "Natives"
// @Success 204
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /loadorder/{profile}/natives [put]
func (h *Handler) HandleSetNatives(c *fiber.Ctx) error {
	var req models.SetNativesRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	h.service.SetNatives(param(c, "profile"), req.Natives)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReconcile forces a reconcile cycle.
// @Summary Reconcile
// @Description Run a reconcile cycle for the profile now.
// @Tags loadorder
// @Security ApiKeyAuth
// @Produce json
// @Param profile path string true "Profile"
// @Success 200 {object} models.ReconcileResponse
// @Failure 409 {object} map[string]string "Cycle In Flight"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /loadorder/{profile}/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	resp, err := h.service.Reconcile(c.Context(), param(c, "profile"))
	if err != nil {
		if errors.Is(err, ErrCycleInFlight) {
			return errorJSON(c, fiber.StatusConflict, err)
		}
		l.Error("Reconcile failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(resp)
}

// HandleGetLocks returns the lock map of a profile.
// @Summary Get Locks
// @Tags loadorder
// @Security ApiKeyAuth
// @Produce json
// @Param profile path string true "Profile"
// @Success 200 {object} map[string]int
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /loadorder/{profile}/locks [get]
func (h *Handler) HandleGetLocks(c *fiber.Ctx) error {
	lockMap, err := h.service.Locks(c.Context(), param(c, "profile"))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(lockMap)
}

// HandleGetLock returns the locked index of an identifier.
// @Summary Get Lock
// @Tags loadorder
// @Security ApiKeyAuth
// @Produce json
// @Param profile path string true "Profile"
// @Param identifier path string true "Plugin identifier"
// @Success 200 {object} models.LockResponse
// @Failure 404 {object} map[string]string "Not Locked"
// @Router /loadorder/{profile}/locks/{identifier} [get]
func (h *Handler) HandleGetLock(c *fiber.Ctx) error {
	identifier := param(c, "identifier")

	idx, err := h.service.LockedIndexOf(c.Context(), param(c, "profile"), identifier)
	if err != nil {
		if errors.Is(err, ErrNotLocked) {
			return errorJSON(c, fiber.StatusNotFound, err)
		}
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(models.LockResponse{Identifier: identifier, Index: idx})
}

// HandleSetLock locks an identifier to an absolute load index.
// @Summary Set Lock
// @Description Lock a plugin to an absolute load index. The order is republished after the quiet window.
// @Tags loadorder
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param profile path string true "Profile"
// @Param identifier path string true "Plugin identifier"
// @Param body body models.LockRequest true "Index"
// @Success 200 {object} models.LockResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /loadorder/{profile}/locks/{identifier} [put]
func (h *Handler) HandleSetLock(c *fiber.Ctx) error {
	profile := param(c, "profile")
	identifier := param(c, "identifier")
	l := logger.WithRayID(h.service.logger, c)

	var req models.LockRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	if req.Index == nil {
		return errorJSON(c, fiber.StatusBadRequest, locks.ErrInvalidIndex)
	}

	if err := h.service.SetLock(c.Context(), profile, identifier, *req.Index); err != nil {
		if errors.Is(err, locks.ErrInvalidIndex) || errors.Is(err, locks.ErrInvalidIdentifier) {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}
		l.Error("Failed to set lock", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	l.Info("Lock set", zap.String("profile", profile), zap.String("identifier", identifier), zap.Int("index", *req.Index))
	return c.JSON(models.LockResponse{Identifier: identifier, Index: *req.Index})
}

// HandleClearLock removes the lock of an identifier.
// @Summary Clear Lock
// @Tags loadorder
// @Security ApiKeyAuth
// @Param profile path string true "Profile"
// @Param identifier path string true "Plugin identifier"
// @Success 204
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /loadorder/{profile}/locks/{identifier} [delete]
func (h *Handler) HandleClearLock(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.ClearLock(c.Context(), param(c, "profile"), param(c, "identifier")); err != nil {
		l.Error("Failed to clear lock", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePreview reconciles the request body without touching any profile.
// @Summary Preview
// @Description Reconcile an order against locks without publishing.
// @Tags loadorder
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body models.PreviewRequest true "Input"
// @Success 200 {object} models.PreviewResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /loadorder/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	var req models.PreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	return c.JSON(h.service.Preview(req))
}

// param copies a route parameter; fiber reuses the underlying buffer after
// the request while profiles and identifiers are kept as map keys.
func param(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Params(name))
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
