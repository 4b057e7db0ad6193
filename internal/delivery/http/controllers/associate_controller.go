package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"serraturismo/internal/delivery/http/helpers"
	"serraturismo/internal/delivery/http/middleware"
	"serraturismo/internal/domain"
	"serraturismo/internal/view"
)

// AssociateController serves the public associate directory, membership
// submission, and the admin review actions.
type AssociateController struct {
	Logger      *slog.Logger
	Service     domain.AssociateService
	Email       domain.EmailService
	AdminEmail  string
	Directory   *view.AssociateDirectory
	Invalidator *middleware.CacheInvalidator
}

func NewAssociateController(logger *slog.Logger, svc domain.AssociateService, email domain.EmailService, adminEmail string, dir *view.AssociateDirectory, inv *middleware.CacheInvalidator) *AssociateController {
	return &AssociateController{
		Logger:      logger,
		Service:     svc,
		Email:       email,
		AdminEmail:  adminEmail,
		Directory:   dir,
		Invalidator: inv,
	}
}

// Directory godoc
// @Summary Public associate directory
// @Description Only approved associates are listed. Filters by case-insensitive name substring and exact category; fixed page size of 8.
// @Tags associates
// @Produce json
// @Param search query string false "Name substring"
// @Param category query string false "Exact category"
// @Param page query int false "1-based page"
// @Success 200 {object} helpers.APIResponse "data contains the page"
// @Router /associates [get]
func (c *AssociateController) DirectoryPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := view.AssociateFilter{Search: q.Get("search"), Category: q.Get("category")}
	p := helpers.ParsePagination(r)
	p.PageSize = view.DirectoryPageSize
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Directory.Query(f, p))
}

// SubmitAssociateBody is the request body for POST /associates.
type SubmitAssociateBody struct {
	Name         string                        `json:"name"`
	Category     string                        `json:"category"`
	LogoURL      string                        `json:"logo_url"`
	Instagram    string                        `json:"instagram"`
	SiteURL      string                        `json:"site_url"`
	Registration *domain.AssociateRegistration `json:"registration"`
}

// Validate implements Validator.
func (s SubmitAssociateBody) Validate() []string {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	if s.Category == "" {
		errs = append(errs, "category is required")
	}
	return errs
}

// SubmitAssociate godoc
// @Summary Submit a membership request
// @Description Creates a pending associate. The responsible contact gets a "new" lifecycle email and the admin address is notified; both sends are best-effort.
// @Tags associates
// @Accept json
// @Produce json
// @Param associate body SubmitAssociateBody true "Membership data"
// @Success 201 {object} helpers.APIResponse "data contains the created associate"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /associates [post]
func (c *AssociateController) SubmitAssociate(w http.ResponseWriter, r *http.Request) {
	var body SubmitAssociateBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	a := &domain.Associate{
		Name:         body.Name,
		Category:     body.Category,
		LogoURL:      body.LogoURL,
		Instagram:    body.Instagram,
		SiteURL:      body.SiteURL,
		Registration: body.Registration,
	}
	if err := c.Service.Submit(r.Context(), a); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid associate")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	c.sendLifecycleMail(r.Context(), a, domain.AssociateEmailNew)
	if c.AdminEmail != "" {
		c.sendBestEffort(r.Context(), "admin notification", func(ctx context.Context) error {
			return c.Email.SendAdminNotification(ctx, &domain.AdminNotificationEmailData{
				Email:          c.AdminEmail,
				Kind:           "associate",
				Title:          a.Name,
				SubmitterName:  responsibleName(a),
				SubmitterEmail: responsibleEmail(a),
			})
		})
	}
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusCreated, a)
}

// ListAssociates godoc
// @Summary List all associates regardless of status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains all associates"
// @Router /admin/associates [get]
func (c *AssociateController) ListAssociates(w http.ResponseWriter, r *http.Request) {
	associates, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, associates)
}

// ApproveAssociate godoc
// @Summary Approve an associate
// @Description Also valid as a manual correction of a rejected associate.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param associateID path string true "Associate ID"
// @Success 200 {object} helpers.APIResponse "data contains the updated associate"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already in that state)"
// @Router /admin/associates/{associateID}/approve [post]
func (c *AssociateController) ApproveAssociate(w http.ResponseWriter, r *http.Request) {
	c.review(w, r, c.Service.Approve, domain.AssociateEmailApproved)
}

// RejectAssociate godoc
// @Summary Reject an associate
// @Description Also valid as a manual correction of an approved associate.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param associateID path string true "Associate ID"
// @Success 200 {object} helpers.APIResponse "data contains the updated associate"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already in that state)"
// @Router /admin/associates/{associateID}/reject [post]
func (c *AssociateController) RejectAssociate(w http.ResponseWriter, r *http.Request) {
	c.review(w, r, c.Service.Reject, domain.AssociateEmailRejected)
}

func (c *AssociateController) review(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (*domain.Associate, error), action domain.AssociateEmailAction) {
	a, err := op(r.Context(), r.PathValue("associateID"))
	if err != nil {
		c.writeAssociateError(w, r, err)
		return
	}
	c.sendLifecycleMail(r.Context(), a, action)
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, a)
}

// DeleteAssociate godoc
// @Summary Delete an associate
// @Description Hard delete. The stored logo asset is removed best-effort first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param associateID path string true "Associate ID"
// @Success 200 {object} helpers.APIResponse "data contains {deleted: true}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/associates/{associateID} [delete]
func (c *AssociateController) DeleteAssociate(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("associateID")); err != nil {
		c.writeAssociateError(w, r, err)
		return
	}
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"deleted": true})
}

// UploadLogo godoc
// @Summary Upload an associate logo
// @Description Multipart form with a "logo" image part, capped at 5MB.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param associateID path string true "Associate ID"
// @Param logo formData file true "Logo image"
// @Success 200 {object} helpers.APIResponse "data contains the updated associate"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (missing, oversized, or non-image file)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/associates/{associateID}/logo [post]
func (c *AssociateController) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(domain.MaxLogoSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing logo file")
		return
	}
	defer file.Close()

	a, err := c.Service.AttachLogo(r.Context(), r.PathValue("associateID"), domain.LogoUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		c.writeAssociateError(w, r, err)
		return
	}
	c.refresh(r.Context())
	helpers.WriteJSONSuccess(w, http.StatusOK, a)
}

func (c *AssociateController) refresh(ctx context.Context) {
	if err := c.Directory.Reload(ctx); err != nil {
		c.Logger.Warn("associate directory reload failed", "err", err)
	}
	if c.Invalidator != nil {
		c.Invalidator.PurgePath(ctx, "/associates")
	}
}

func (c *AssociateController) sendLifecycleMail(ctx context.Context, a *domain.Associate, action domain.AssociateEmailAction) {
	to := responsibleEmail(a)
	if to == "" {
		return
	}
	c.sendBestEffort(ctx, "associate "+string(action), func(ctx context.Context) error {
		return c.Email.SendAssociateEmail(ctx, &domain.AssociateEmailData{
			Email:         to,
			AssociateName: a.Name,
			Action:        action,
		})
	})
}

func (c *AssociateController) sendBestEffort(ctx context.Context, kind string, send func(context.Context) error) {
	if err := send(ctx); err != nil {
		c.Logger.Warn("mail send failed, state transition stands", "kind", kind, "err", err)
	}
}

func (c *AssociateController) writeAssociateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "associate not found")
	case errors.Is(err, domain.ErrInvalidStatus):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "associate already in that state")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

func responsibleName(a *domain.Associate) string {
	if a.Registration != nil && a.Registration.ResponsibleName != "" {
		return a.Registration.ResponsibleName
	}
	return a.Name
}

func responsibleEmail(a *domain.Associate) string {
	if a.Registration != nil {
		return a.Registration.ResponsibleEmail
	}
	return ""
}
