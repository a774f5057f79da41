package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-manager/internal/repository"
)

type StatsSource interface {
	Stats(ctx context.Context) (repository.DashboardStats, error)
}

type DashboardHandler struct {
	Source StatsSource
}

func NewDashboardHandler(src StatsSource) *DashboardHandler { return &DashboardHandler{Source: src} }

// Stats handles GET /v1/dashboard/stats.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Source.Stats(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
