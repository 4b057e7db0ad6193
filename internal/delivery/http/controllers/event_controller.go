package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"serraturismo/internal/delivery/http/helpers"
	"serraturismo/internal/delivery/http/middleware"
	"serraturismo/internal/domain"
	"serraturismo/internal/view"
)

// EventController serves the public events listing and the admin event CRUD.
type EventController struct {
	Logger      *slog.Logger
	Service     domain.EventService
	Board       *view.EventsBoard
	Invalidator *middleware.CacheInvalidator
}

func NewEventController(logger *slog.Logger, svc domain.EventService, board *view.EventsBoard, inv *middleware.CacheInvalidator) *EventController {
	return &EventController{Logger: logger, Service: svc, Board: board, Invalidator: inv}
}

// refresh re-fetches the full collection into the board and purges the cached
// listing. Called after every mutation.
func (c *EventController) refresh(ctx context.Context) {
	if err := c.Board.Reload(ctx); err != nil {
		c.Logger.Warn("events board reload failed", "err", err)
	}
	if c.Invalidator != nil {
		c.Invalidator.PurgePath(ctx, "/events")
	}
}

// EventsListingResponse is the data payload for GET /events.
type EventsListingResponse struct {
	Sections []view.MonthSection `json:"sections"`
	Months   []string            `json:"months"`
}

// ListEvents godoc
// @Summary List events grouped by month
// @Description Filters by free text (title/description/location), exact category, and exact "YYYY-MM" month. Results come sectioned by month; months lists every distinct month across all events.
// @Tags events
// @Produce json
// @Param search query string false "Substring match on title, description, location"
// @Param category query string false "Exact category"
// @Param month query string false "Year-month filter, e.g. 2025-12"
// @Success 200 {object} helpers.APIResponse "data contains sections and months"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := view.EventFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Month:    q.Get("month"),
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventsListingResponse{
		Sections: c.Board.QuerySections(f),
		Months:   c.Board.Months(),
	})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEventByID(r.Context(), r.PathValue("eventID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEventRequest is the request body for POST /admin/events.
type CreateEventRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         time.Time  `json:"date"`
	EndDate      *time.Time `json:"end_date"`
	Location     string     `json:"location"`
	ImageURL     string     `json:"image_url"`
	ExternalLink string     `json:"external_link"`
	IsFeatured   bool       `json:"is_featured"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Location == "" {
		errs = append(errs, "location is required")
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if !domain.EventCategory(c.Category).IsValid() {
		errs = append(errs, "category is invalid")
	}
	if c.Status != "" && !domain.EventStatus(c.Status).IsValid() {
		errs = append(errs, "status is invalid")
	}
	return errs
}

// CreateEvent godoc
// @Summary Create an event
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /admin/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		EndDate:      req.EndDate,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		ExternalLink: req.ExternalLink,
		IsFeatured:   req.IsFeatured,
		Category:     domain.EventCategory(req.Category),
		Status:       domain.EventStatus(req.Status),
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEventRequest is the request body for PUT /admin/events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Date         *time.Time `json:"date"`
	EndDate      *time.Time `json:"end_date"`
	Location     *string    `json:"location"`
	ImageURL     *string    `json:"image_url"`
	ExternalLink *string    `json:"external_link"`
	Category     *string    `json:"category"`
	Status       *string    `json:"status"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Category != nil && !domain.EventCategory(*u.Category).IsValid() {
		errs = append(errs, "category is invalid")
	}
	if u.Status != nil && !domain.EventStatus(*u.Status).IsValid() {
		errs = append(errs, "status is invalid")
	}
	return errs
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.EventUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		EndDate:      req.EndDate,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		ExternalLink: req.ExternalLink,
	}
	if req.Category != nil {
		cat := domain.EventCategory(*req.Category)
		upd.Category = &cat
	}
	if req.Status != nil {
		st := domain.EventStatus(*req.Status)
		upd.Status = &st
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("eventID"), upd)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ToggleFeatured godoc
// @Summary Toggle an event's featured flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{eventID}/featured [post]
func (c *EventController) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.ToggleFeatured(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Hard delete; there is no tombstone.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains {deleted: true}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("eventID")); err != nil {
		c.writeEventError(w, r, err)
		return
	}
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
