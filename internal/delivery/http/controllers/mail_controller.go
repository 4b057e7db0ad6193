package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"serraturismo/internal/domain"
)

// MailController exposes the standalone mail endpoints. These predate the
// rest of the API and keep their original contract: JSON POST in, a raw
// {"success": bool, "error"?: string} object out, 405 on any other method.
// They do not use the APIResponse envelope.
type MailController struct {
	Logger     *slog.Logger
	Email      domain.EmailService
	AdminEmail string
}

func NewMailController(logger *slog.Logger, email domain.EmailService, adminEmail string) *MailController {
	return &MailController{Logger: logger, Email: email, AdminEmail: adminEmail}
}

type mailResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type requestMailBody struct {
	Email           string `json:"email"`
	SubmitterName   string `json:"submitterName"`
	EventTitle      string `json:"eventTitle"`
	EventDate       string `json:"eventDate"`
	RejectionReason string `json:"rejectionReason"`
}

func (b requestMailBody) data() *domain.RequestEmailData {
	return &domain.RequestEmailData{
		Email:           b.Email,
		SubmitterName:   b.SubmitterName,
		EventTitle:      b.EventTitle,
		EventDate:       b.EventDate,
		RejectionReason: b.RejectionReason,
	}
}

type adminNotificationBody struct {
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	SubmitterName  string `json:"submitterName"`
	SubmitterEmail string `json:"submitterEmail"`
}

type associateMailBody struct {
	Email         string `json:"email"`
	AssociateName string `json:"associateName"`
	Action        string `json:"action"`
}

// SendConfirmation godoc
// @Summary Send a submission confirmation email
// @Tags mail
// @Accept json
// @Produce json
// @Param body body requestMailBody true "Recipient and event data"
// @Success 200 {object} mailResult
// @Router /send-confirmation [post]
func (c *MailController) SendConfirmation(w http.ResponseWriter, r *http.Request) {
	c.requestMail(w, r, c.Email.SendRequestConfirmation)
}

// SendApproval godoc
// @Summary Send an approval email
// @Tags mail
// @Accept json
// @Produce json
// @Param body body requestMailBody true "Recipient and event data"
// @Success 200 {object} mailResult
// @Router /send-approval [post]
func (c *MailController) SendApproval(w http.ResponseWriter, r *http.Request) {
	c.requestMail(w, r, c.Email.SendRequestApproval)
}

// SendRejection godoc
// @Summary Send a rejection email with the review reason
// @Tags mail
// @Accept json
// @Produce json
// @Param body body requestMailBody true "Recipient, event data, and rejection reason"
// @Success 200 {object} mailResult
// @Router /send-rejection [post]
func (c *MailController) SendRejection(w http.ResponseWriter, r *http.Request) {
	c.requestMail(w, r, c.Email.SendRequestRejection)
}

// SendAdminNotification godoc
// @Summary Notify the admin address of a new submission
// @Tags mail
// @Accept json
// @Produce json
// @Param body body adminNotificationBody true "Submission summary"
// @Success 200 {object} mailResult
// @Router /send-admin-notification [post]
func (c *MailController) SendAdminNotification(w http.ResponseWriter, r *http.Request) {
	if !c.requirePost(w, r) {
		return
	}
	var body adminNotificationBody
	if !c.decode(w, r, &body) {
		return
	}
	c.finish(w, r, c.Email.SendAdminNotification(r.Context(), &domain.AdminNotificationEmailData{
		Email:          c.AdminEmail,
		Kind:           body.Kind,
		Title:          body.Title,
		SubmitterName:  body.SubmitterName,
		SubmitterEmail: body.SubmitterEmail,
	}))
}

// SendAssociateEmail godoc
// @Summary Send an associate lifecycle email
// @Description The action discriminator selects the template: new, approved, or rejected.
// @Tags mail
// @Accept json
// @Produce json
// @Param body body associateMailBody true "Recipient, associate name, and action"
// @Success 200 {object} mailResult
// @Router /send-associate-email [post]
func (c *MailController) SendAssociateEmail(w http.ResponseWriter, r *http.Request) {
	if !c.requirePost(w, r) {
		return
	}
	var body associateMailBody
	if !c.decode(w, r, &body) {
		return
	}
	action := domain.AssociateEmailAction(body.Action)
	if !action.IsValid() {
		c.write(w, http.StatusOK, mailResult{Success: false, Error: "invalid action: " + body.Action})
		return
	}
	c.finish(w, r, c.Email.SendAssociateEmail(r.Context(), &domain.AssociateEmailData{
		Email:         body.Email,
		AssociateName: body.AssociateName,
		Action:        action,
	}))
}

func (c *MailController) requestMail(w http.ResponseWriter, r *http.Request, send func(ctx context.Context, data *domain.RequestEmailData) error) {
	if !c.requirePost(w, r) {
		return
	}
	var body requestMailBody
	if !c.decode(w, r, &body) {
		return
	}
	c.finish(w, r, send(r.Context(), body.data()))
}

func (c *MailController) requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", http.MethodPost)
	c.write(w, http.StatusMethodNotAllowed, mailResult{Success: false, Error: "method not allowed"})
	return false
}

func (c *MailController) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		c.write(w, http.StatusOK, mailResult{Success: false, Error: "invalid JSON body"})
		return false
	}
	return true
}

// finish writes the provider outcome. Failures still answer 200: the success
// flag and the provider's message carry the result.
func (c *MailController) finish(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		c.Logger.Warn("mail send failed", "path", r.URL.Path, "err", err)
		c.write(w, http.StatusOK, mailResult{Success: false, Error: err.Error()})
		return
	}
	c.write(w, http.StatusOK, mailResult{Success: true})
}

func (c *MailController) write(w http.ResponseWriter, status int, res mailResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		c.Logger.Error("failed to encode mail response", "err", err)
	}
}
