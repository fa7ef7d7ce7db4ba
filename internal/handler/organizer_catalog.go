package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-ticketing/internal/model"
	"github.com/iliyamo/festival-ticketing/internal/repository"
)

// CreateArtist handles POST /v1/artists.  Artists are shared across
// organizers; any organizer can add one and attach it to their events.
func (h *OrganizerHandler) CreateArtist(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		FullName string `json:"full_name"`
		Genre    string `json:"genre"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	}
	a := &model.Artist{FullName: req.FullName, Genre: req.Genre}
	if err := h.CatalogRepo.CreateArtist(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create artist"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":        a.ID,
		"full_name": a.FullName,
		"genre":     a.Genre,
	})
}

// CreateService handles POST /v1/services.
func (h *OrganizerHandler) CreateService(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	s := &model.Service{Name: req.Name, Description: req.Description}
	if err := h.CatalogRepo.CreateService(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create service"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":          s.ID,
		"name":        s.Name,
		"description": s.Description,
	})
}

// AttachArtist handles POST /v1/events/:id/artists.  Only the event
// owner may attach; attaching twice is a no-op.
func (h *OrganizerHandler) AttachArtist(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req struct {
		ArtistID uint64 `json:"artist_id"`
	}
	if err := c.Bind(&req); err != nil || req.ArtistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id is required"})
	}
	if err := h.CatalogRepo.AttachArtist(c.Request().Context(), eventID, req.ArtistID, organizerID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to attach artist"})
	}
	return c.JSON(http.StatusOK, echo.Map{"event_id": eventID, "artist_id": req.ArtistID})
}

// AttachService handles POST /v1/events/:id/services.
func (h *OrganizerHandler) AttachService(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req struct {
		ServiceID uint64 `json:"service_id"`
	}
	if err := c.Bind(&req); err != nil || req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service_id is required"})
	}
	if err := h.CatalogRepo.AttachService(c.Request().Context(), eventID, req.ServiceID, organizerID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to attach service"})
	}
	return c.JSON(http.StatusOK, echo.Map{"event_id": eventID, "service_id": req.ServiceID})
}
