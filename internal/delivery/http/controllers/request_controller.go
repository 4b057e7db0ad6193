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

const eventDateLayout = "02/01/2006"

// RequestController handles public event-request submission and admin review.
type RequestController struct {
	Logger      *slog.Logger
	Service     domain.EventRequestService
	Email       domain.EmailService
	AdminEmail  string
	Board       *view.EventsBoard
	Invalidator *middleware.CacheInvalidator
}

func NewRequestController(logger *slog.Logger, svc domain.EventRequestService, email domain.EmailService, adminEmail string, board *view.EventsBoard, inv *middleware.CacheInvalidator) *RequestController {
	return &RequestController{
		Logger:      logger,
		Service:     svc,
		Email:       email,
		AdminEmail:  adminEmail,
		Board:       board,
		Invalidator: inv,
	}
}

// SubmitRequestBody is the request body for POST /event-requests.
type SubmitRequestBody struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         time.Time  `json:"date"`
	EndDate      *time.Time `json:"end_date"`
	Location     string     `json:"location"`
	ImageURL     string     `json:"image_url"`
	ExternalLink string     `json:"external_link"`
	Category     string     `json:"category"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Organization string     `json:"organization"`
}

// Validate implements Validator.
func (s SubmitRequestBody) Validate() []string {
	var errs []string
	if s.Title == "" {
		errs = append(errs, "title is required")
	}
	if s.Location == "" {
		errs = append(errs, "location is required")
	}
	if s.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	if s.Email == "" {
		errs = append(errs, "email is required")
	}
	if !domain.EventCategory(s.Category).IsValid() {
		errs = append(errs, "category is invalid")
	}
	return errs
}

// SubmitRequest godoc
// @Summary Submit an event proposal
// @Description Creates a pending event request. The submitter gets a confirmation email and the bureau's admin address is notified; both sends are best-effort.
// @Tags event-requests
// @Accept json
// @Produce json
// @Param request body SubmitRequestBody true "Proposal"
// @Success 201 {object} helpers.APIResponse "data contains the created request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /event-requests [post]
func (c *RequestController) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var body SubmitRequestBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	req := &domain.EventRequest{
		Title:        body.Title,
		Description:  body.Description,
		Date:         body.Date,
		EndDate:      body.EndDate,
		Location:     body.Location,
		ImageURL:     body.ImageURL,
		ExternalLink: body.ExternalLink,
		Category:     domain.EventCategory(body.Category),
		SubmittedBy: domain.Submitter{
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			Organization: body.Organization,
		},
	}
	if err := c.Service.Submit(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	c.sendBestEffort(r.Context(), "confirmation", func(ctx context.Context) error {
		return c.Email.SendRequestConfirmation(ctx, requestEmailData(req))
	})
	if c.AdminEmail != "" {
		c.sendBestEffort(r.Context(), "admin notification", func(ctx context.Context) error {
			return c.Email.SendAdminNotification(ctx, &domain.AdminNotificationEmailData{
				Email:          c.AdminEmail,
				Kind:           "event request",
				Title:          req.Title,
				SubmitterName:  req.SubmittedBy.Name,
				SubmitterEmail: req.SubmittedBy.Email,
			})
		})
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, req)
}

// ListRequests godoc
// @Summary List event requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains all requests, newest first"
// @Router /admin/event-requests [get]
func (c *RequestController) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, requests)
}

// ApproveResponse is the data payload for an approved request.
type ApproveResponse struct {
	Request *domain.EventRequest `json:"request"`
	Event   *domain.Event        `json:"event"`
}

// ApproveRequest godoc
// @Summary Approve a pending event request
// @Description Publishes the proposed event and marks the request approved in one transaction. The approval email is sent afterwards, best-effort: a mail failure does not undo the approval.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID"
// @Success 200 {object} helpers.APIResponse "data contains the request and the spawned event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown or already reviewed)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/event-requests/{requestID}/approve [post]
func (c *RequestController) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	event, req, err := c.Service.Approve(r.Context(), r.PathValue("requestID"))
	if err != nil {
		c.writeReviewError(w, r, err)
		return
	}

	c.sendBestEffort(r.Context(), "approval", func(ctx context.Context) error {
		return c.Email.SendRequestApproval(ctx, requestEmailData(req))
	})
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, ApproveResponse{Request: req, Event: event})
}

// RejectRequestBody is the request body for rejecting an event request.
type RejectRequestBody struct {
	Reason string `json:"reason"`
}

// Validate implements Validator. A rejection without a reason is not invocable.
func (b RejectRequestBody) Validate() []string {
	if b.Reason == "" {
		return []string{"reason is required"}
	}
	return nil
}

// RejectRequest godoc
// @Summary Reject a pending event request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID"
// @Param body body RejectRequestBody true "Rejection reason (required)"
// @Success 200 {object} helpers.APIResponse "data contains the rejected request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown or already reviewed)"
// @Router /admin/event-requests/{requestID}/reject [post]
func (c *RequestController) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var body RejectRequestBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	req, err := c.Service.Reject(r.Context(), r.PathValue("requestID"), body.Reason)
	if err != nil {
		c.writeReviewError(w, r, err)
		return
	}

	c.sendBestEffort(r.Context(), "rejection", func(ctx context.Context) error {
		data := requestEmailData(req)
		data.RejectionReason = req.RejectionReason
		return c.Email.SendRequestRejection(ctx, data)
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, req)
}

func (c *RequestController) refresh(ctx context.Context) {
	if err := c.Board.Reload(ctx); err != nil {
		c.Logger.Warn("events board reload failed", "err", err)
	}
	if c.Invalidator != nil {
		c.Invalidator.PurgePath(ctx, "/events")
	}
}

// sendBestEffort runs a mail send and only logs on failure: messaging never
// affects the state transition that triggered it.
func (c *RequestController) sendBestEffort(ctx context.Context, kind string, send func(context.Context) error) {
	if err := send(ctx); err != nil {
		c.Logger.Warn("mail send failed, state transition stands", "kind", kind, "err", err)
	}
}

func (c *RequestController) writeReviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "pending request not found")
	case errors.Is(err, domain.ErrInvalidStatus):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "request already reviewed")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

func requestEmailData(req *domain.EventRequest) *domain.RequestEmailData {
	return &domain.RequestEmailData{
		Email:         req.SubmittedBy.Email,
		SubmitterName: req.SubmittedBy.Name,
		EventTitle:    req.Title,
		EventDate:     req.Date.Format(eventDateLayout),
	}
}
