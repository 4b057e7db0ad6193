package http

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"serraturismo/internal/delivery/http/controllers"
	"serraturismo/internal/delivery/http/middleware"
	"serraturismo/internal/domain"
)

// RouterConfig carries everything the route table needs beyond the
// controllers themselves.
type RouterConfig struct {
	Events     *controllers.EventController
	Requests   *controllers.RequestController
	Associates *controllers.AssociateController
	Locations  *controllers.LocationController
	Auth       *controllers.AuthController
	Mail       *controllers.MailController

	Verifier domain.TokenVerifier
	Limiter  *middleware.RateLimiter

	// Cache is optional; when nil the public GET routes are served uncached.
	Cache    *redis.Client
	CacheTTL time.Duration
}

// NewRouter initializes the HTTP router with all application routes.
//
// Public GET routes go through the response cache, public write routes
// through the rate limiter, and everything under /admin/ behind the
// bearer-token guard. The mail endpoints are registered without a method
// pattern: they answer 405 themselves to keep their original response shape.
func NewRouter(conf RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	cached := func(next http.HandlerFunc) http.HandlerFunc {
		if conf.Cache == nil {
			return next
		}
		return middleware.ResponseCache(conf.Cache, conf.CacheTTL, next)
	}
	limited := conf.Limiter.Limit
	authed := middleware.RequireAuth(conf.Verifier)

	// Public listings
	mux.HandleFunc("GET /events", cached(conf.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", cached(conf.Events.GetEvent))
	mux.HandleFunc("GET /associates", cached(conf.Associates.DirectoryPage))
	mux.HandleFunc("GET /locations", cached(conf.Locations.ListLocations))

	// Public submissions
	mux.HandleFunc("POST /event-requests", limited(conf.Requests.SubmitRequest))
	mux.HandleFunc("POST /associates", limited(conf.Associates.SubmitAssociate))

	// Mail endpoints
	mux.HandleFunc("/send-admin-notification", limited(conf.Mail.SendAdminNotification))
	mux.HandleFunc("/send-confirmation", limited(conf.Mail.SendConfirmation))
	mux.HandleFunc("/send-approval", limited(conf.Mail.SendApproval))
	mux.HandleFunc("/send-rejection", limited(conf.Mail.SendRejection))
	mux.HandleFunc("/send-associate-email", limited(conf.Mail.SendAssociateEmail))

	// Auth
	mux.HandleFunc("POST /auth/login", limited(conf.Auth.Login))

	// Admin: event requests
	mux.HandleFunc("GET /admin/event-requests", authed(conf.Requests.ListRequests))
	mux.HandleFunc("POST /admin/event-requests/{requestID}/approve", authed(conf.Requests.ApproveRequest))
	mux.HandleFunc("POST /admin/event-requests/{requestID}/reject", authed(conf.Requests.RejectRequest))

	// Admin: events
	mux.HandleFunc("POST /admin/events", authed(conf.Events.CreateEvent))
	mux.HandleFunc("PUT /admin/events/{eventID}", authed(conf.Events.UpdateEvent))
	mux.HandleFunc("POST /admin/events/{eventID}/featured", authed(conf.Events.ToggleFeatured))
	mux.HandleFunc("DELETE /admin/events/{eventID}", authed(conf.Events.DeleteEvent))

	// Admin: associates
	mux.HandleFunc("GET /admin/associates", authed(conf.Associates.ListAssociates))
	mux.HandleFunc("POST /admin/associates/{associateID}/approve", authed(conf.Associates.ApproveAssociate))
	mux.HandleFunc("POST /admin/associates/{associateID}/reject", authed(conf.Associates.RejectAssociate))
	mux.HandleFunc("POST /admin/associates/{associateID}/logo", authed(conf.Associates.UploadLogo))
	mux.HandleFunc("DELETE /admin/associates/{associateID}", authed(conf.Associates.DeleteAssociate))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
