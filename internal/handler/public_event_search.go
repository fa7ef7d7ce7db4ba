package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-ticketing/internal/repository"
)

// time: "upcoming" (default), "active" (ends_at >= NOW()), "any" (no time filter)
func (h *PublicHandler) SearchEvents(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	city := strings.TrimSpace(c.QueryParam("city"))
	country := strings.TrimSpace(c.QueryParam("country"))
	timeFilter := strings.ToLower(strings.TrimSpace(c.QueryParam("time")))
	if timeFilter == "" {
		timeFilter = "upcoming"
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	ps, _ := strconv.Atoi(c.QueryParam("page_size"))
	if ps < 1 {
		ps = 20
	}
	if ps > 100 {
		ps = 100
	}

	q := repository.EventSearchQuery{
		Name:       name,
		City:       city,
		Country:    country,
		TimeFilter: timeFilter,
		Page:       page,
		PageSize:   ps,
	}

	items, total, err := h.EventRepo.SearchUpcoming(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "database_error",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}
