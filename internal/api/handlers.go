package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fastfood/internal/engine"
	"fastfood/internal/export"
	"fastfood/internal/models"
)

type Handler struct {
	store  *engine.Store
	log    *zap.Logger
	mapMax int
}

func NewHandler(store *engine.Store, log *zap.Logger, mapMax int) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, log: log, mapMax: mapMax}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/dataset", h.GetDatasetInfo)
	api.GET("/restaurants", h.GetRestaurants)
	api.GET("/provinces", h.GetProvinces)
	api.GET("/provinces/:province/stats", h.GetProvinceStats)
	api.GET("/cities", h.GetCities)
	api.GET("/categories", h.GetCategories)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/export", h.ExportXLSX)
	api.POST("/refresh", h.Refresh)
}

// --- HELPERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func selectionFromQuery(c echo.Context) engine.Selection {
	return engine.Selection{
		Province:   c.QueryParam("province"),
		City:       c.QueryParam("city"),
		Categories: c.QueryParams()["categories"],
		Chains:     c.QueryParams()["chains"],
	}
}

// snapshot returns the loaded dataset, or nil after answering 503.
// The server comes up before the background load finishes, so every
// data route has to tolerate a not-yet-loaded store.
func (h *Handler) snapshot(c echo.Context) *engine.Snapshot {
	snap := h.store.Snapshot()
	if snap == nil {
		_ = c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "dataset is still loading, try again shortly",
		})
		return nil
	}
	return snap
}

// --- HANDLERS ---

func (h *Handler) GetDatasetInfo(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	return c.JSON(http.StatusOK, engine.DatasetInfo(snap))
}

// GetRestaurants lists the filtered view, paginated.
func (h *Handler) GetRestaurants(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	view := selectionFromQuery(c).Apply(snap.Table)

	total := len(view)
	limit, offset := getPaginationParams(c, total)
	if offset >= total {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"data": []models.Restaurant{}, "total": total, "limit": limit, "offset": offset,
		})
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": view[offset:end], "total": total, "limit": limit, "offset": offset,
	})
}

func (h *Handler) GetProvinces(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"options": engine.Distinct(snap.Table, engine.KeyProvince),
		"counts":  engine.SortedCounts(engine.CountBy(snap.Table, engine.KeyProvince)),
	})
}

// GetCities lists city options, narrowed to a province when one is
// selected.
func (h *Handler) GetCities(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	table := engine.FilterByProvince(snap.Table, c.QueryParam("province"))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"options": engine.Distinct(table, engine.KeyCity),
	})
}

func (h *Handler) GetCategories(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"options": engine.Distinct(snap.Table, engine.KeyCategories),
		"counts":  engine.SortedCounts(engine.CountBy(snap.Table, engine.KeyCategories)),
	})
}

// GetDashboard returns every render-ready table for the current
// selector state in one payload.
func (h *Handler) GetDashboard(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	return c.JSON(http.StatusOK, engine.BuildDashboard(snap.Table, selectionFromQuery(c), h.mapMax))
}

func (h *Handler) GetProvinceStats(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	stats, err := engine.ProvinceStats(snap.Table, c.Param("province"))
	if err != nil && !errors.Is(err, engine.ErrDivisionUndefined) {
		return err
	}
	// An unknown province yields zero rows and no average, not an error.
	return c.JSON(http.StatusOK, stats)
}

// ExportXLSX downloads the filtered view as a workbook.
func (h *Handler) ExportXLSX(c echo.Context) error {
	snap := h.snapshot(c)
	if snap == nil {
		return nil
	}
	view := selectionFromQuery(c).Apply(snap.Table)

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="restaurants.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteXLSX(c.Response(), view)
}

// Refresh re-fetches the dataset and swaps the snapshot.
func (h *Handler) Refresh(c echo.Context) error {
	snap, err := h.store.Refresh(c.Request().Context())
	if err != nil {
		h.log.Error("refresh failed", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrDataUnavailable) {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, engine.DatasetInfo(snap))
}
