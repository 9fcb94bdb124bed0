package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wattlehq/gatepass/internal/invitation/service"
	"github.com/wattlehq/gatepass/internal/invitation/store"
	"github.com/wattlehq/gatepass/pkg/httpx"
	"github.com/wattlehq/gatepass/pkg/slogx"

	_ "github.com/wattlehq/gatepass/api/invitation" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	adminToken   string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	WorkflowService     *service.WorkflowService
	RegistryService     *service.RegistryService
	RegistrationService *service.RegistrationService
	LedgerService       *service.LedgerService
}

func NewRouter(
	adminToken, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		adminToken:   adminToken,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvitations()
	r.registerRegistration()
	r.registerLedger()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatepass Invitation Service API
//	@version		0.1.0
//	@description	Invitation-gated user registration: invitation key lifecycle,
//	@description	per-user allocation accounting and key-gated account creation.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	AdminAuth
//	@in							header
//	@name						Authorization
//	@description				Static admin token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvitations() {
	createHandler := &InviteCreateHandler{WorkflowService: r.WorkflowService}
	bulkHandler := &BulkKeyHandler{RegistryService: r.RegistryService}
	showHandler := &KeyShowHandler{RegistryService: r.RegistryService}

	// POST /invitations - admin token, moderate limit (spends allocation)
	r.Mux.Handle("POST /v1/invitations",
		httpx.Chain(createHandler,
			httpx.AdminTokenMiddleware(r.adminToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /invitations/bulk - admin token, moderate limit
	r.Mux.Handle("POST /v1/invitations/bulk",
		httpx.Chain(bulkHandler,
			httpx.AdminTokenMiddleware(r.adminToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /invitations/{key} - public validity check, strict limit by IP
	// (key guessing prevention)
	r.Mux.Handle("GET /v1/invitations/{key}",
		httpx.Chain(showHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerRegistration() {
	h := &RegisterHandler{RegistrationService: r.RegistrationService}

	// POST /register - public signup endpoint, strict rate limit by IP
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerLedger() {
	remainingHandler := &RemainingHandler{LedgerService: r.LedgerService}
	topOffHandler := &TopOffHandler{LedgerService: r.LedgerService}
	grantHandler := &GrantHandler{LedgerService: r.LedgerService}

	r.Mux.Handle("GET /v1/invitations/remaining/{user}",
		httpx.Chain(remainingHandler,
			httpx.AdminTokenMiddleware(r.adminToken),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/ledger/topoff",
		httpx.Chain(topOffHandler,
			httpx.AdminTokenMiddleware(r.adminToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/ledger/grant",
		httpx.Chain(grantHandler,
			httpx.AdminTokenMiddleware(r.adminToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &SweepHandler{RegistryService: r.RegistryService}

	r.Mux.Handle("POST /v1/admin/sweep",
		httpx.Chain(h,
			httpx.AdminTokenMiddleware(r.adminToken),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
