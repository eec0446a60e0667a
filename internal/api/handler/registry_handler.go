package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/cuongbtq/taskqueue-be/internal/api/domain"
	"github.com/cuongbtq/taskqueue-be/internal/api/dto"
	"github.com/cuongbtq/taskqueue-be/internal/api/model"
	"github.com/gin-gonic/gin"
)

// RegistryHandler handles the synchronous user and asset endpoints
type RegistryHandler struct {
	logger    *slog.Logger
	repo      Repository
	opTimeout time.Duration
}

// NewRegistryHandler creates a new RegistryHandler instance
func NewRegistryHandler(deps *Dependencies) *RegistryHandler {
	return &RegistryHandler{
		logger:    deps.Logger,
		repo:      deps.Repository,
		opTimeout: deps.operationTimeout(),
	}
}

// AddUser handles POST /add_user
func (h *RegistryHandler) AddUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	id, err := h.repo.CreateUser(ctx, &model.User{Username: req.Username, Email: req.Email})
	if err != nil {
		h.writeStoreError(c, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("User %s created successfully", req.Username),
		"user_id": id,
	})
}

// GetUsers handles GET /get_users
func (h *RegistryHandler) GetUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	users, err := h.repo.ListUsers(ctx)
	if err != nil {
		h.writeStoreError(c, "Failed to list users", err)
		return
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserDTO{ID: u.ID, Username: u.Username, Email: u.Email})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users fetched successfully",
		"users":   out,
	})
}

// AddAsset handles POST /add_asset
func (h *RegistryHandler) AddAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	// NaN and Inf cannot be encoded back out as JSON
	if math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0) {
		h.logger.Warn("Invalid asset value", slog.Float64("value", *req.Value))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "value must be a finite number",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	id, err := h.repo.CreateAsset(ctx, &model.Asset{Name: req.Name, Value: *req.Value, UserID: req.UserID})
	if err != nil {
		h.writeStoreError(c, "Failed to create asset", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Asset %s created successfully", req.Name),
		"asset_id": id,
	})
}

// GetAssets handles GET /get_asset
func (h *RegistryHandler) GetAssets(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opTimeout)
	defer cancel()

	assets, err := h.repo.ListAssets(ctx)
	if err != nil {
		h.writeStoreError(c, "Failed to list assets", err)
		return
	}

	out := make([]dto.AssetDTO, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.AssetDTO{
			ID:    a.ID,
			Name:  a.Name,
			Value: a.Value,
			Owner: dto.OwnerDTO{UserID: a.UserID, Username: a.OwnerUsername},
		})
	}

	c.JSON(http.StatusOK, out)
}

// writeStoreError maps constraint violations to 4xx and everything else to
// 500. Driver messages are logged only.
func (h *RegistryHandler) writeStoreError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrUniqueViolation):
		h.logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{
			"error": "username or email already exists",
		})
	case errors.Is(err, domain.ErrForeignKeyViolation):
		h.logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "user_id does not reference an existing user",
		})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": "operation timed out",
		})
	default:
		h.logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": msg,
		})
	}
}
