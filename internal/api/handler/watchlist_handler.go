package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/signalist/signalist-api/internal/api/metrics"
	"github.com/signalist/signalist-api/internal/core/domain"
	"github.com/signalist/signalist-api/internal/core/ports"
)

// WatchlistHandler handles HTTP requests for the caller's own watchlist.
// Operations scope exclusively to the resolved identity; no endpoint accepts
// a caller-supplied target user id.
type WatchlistHandler struct {
	service ports.WatchlistService
}

func NewWatchlistHandler(service ports.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

// List handles GET /api/watchlist.
//
// @Summary      List the caller's watchlist with latest quotes
// @Tags         watchlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  watchlistListResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	data := make([]watchlistItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, watchlistItemResponse{
			Symbol:        item.Symbol,
			Company:       item.Company,
			AddedAt:       item.AddedAt,
			CurrentPrice:  item.CurrentPrice,
			ChangePercent: item.ChangePercent,
		})
	}
	return c.JSON(http.StatusOK, watchlistListResponse{Data: data})
}

// Add handles POST /api/watchlist.
//
// @Summary      Add a symbol to the caller's watchlist
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addWatchlistRequest  true  "Symbol to track"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/watchlist [post]
func (h *WatchlistHandler) Add(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Add(c.Request().Context(), identity.UserID, req.Symbol, req.Company); err != nil {
		if errors.Is(err, domain.ErrWatchlistDuplicate) {
			metrics.WatchlistMutationsTotal.WithLabelValues("add", "conflict").Inc()
		} else {
			metrics.WatchlistMutationsTotal.WithLabelValues("add", "error").Inc()
		}
		return err
	}

	metrics.WatchlistMutationsTotal.WithLabelValues("add", "ok").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "added to watchlist"})
}

// Remove handles DELETE /api/watchlist?symbol=S. Deleting an absent entry
// still succeeds.
//
// @Summary      Remove a symbol from the caller's watchlist
// @Tags         watchlist
// @Produce      json
// @Security     BearerAuth
// @Param        symbol  query     string  true  "Ticker symbol"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/watchlist [delete]
func (h *WatchlistHandler) Remove(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	symbol := strings.TrimSpace(c.QueryParam("symbol"))
	if symbol == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "symbol query parameter is required")
	}

	if err := h.service.Remove(c.Request().Context(), identity.UserID, symbol); err != nil {
		metrics.WatchlistMutationsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}

	metrics.WatchlistMutationsTotal.WithLabelValues("remove", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "removed from watchlist"})
}
