// Package server exposes the platform over a JSON HTTP API.
//
// Route layout:
//
//	POST /api/v1/auth/register            create a user, returns a token
//	POST /api/v1/auth/login               exchange phone+PIN for a token
//	GET  /healthz                         liveness probe
//	GET  /metrics                         Prometheus metrics
//
// All /api/v1/groups routes require a Bearer token. Group-scoped routes
// additionally require the token to grant access to the group; admins may
// access any group.
package server

import (
	"net/http"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/auth"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/metrics"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/middleware"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/report"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/service"
)

// Server holds the services behind the HTTP API.
type Server struct {
	authn    auth.Authenticator
	tokens   *auth.JWTManager
	groups   *service.GroupService
	members  *service.MemberService
	rounds   *service.RoundService
	ledger   *service.LedgerService
	exporter *report.Exporter
}

// New creates a Server over the given services.
func New(
	authn auth.Authenticator,
	tokens *auth.JWTManager,
	groups *service.GroupService,
	members *service.MemberService,
	rounds *service.RoundService,
	ledger *service.LedgerService,
	exporter *report.Exporter,
) *Server {
	return &Server{
		authn:    authn,
		tokens:   tokens,
		groups:   groups,
		members:  members,
		rounds:   rounds,
		ledger:   ledger,
		exporter: exporter,
	}
}

// Handler builds the route table, with request logging applied to everything
// and JWT auth applied to the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/groups", s.handleCreateGroup)
	api.HandleFunc("GET /api/v1/groups", s.handleListGroups)
	api.HandleFunc("GET /api/v1/groups/{id}", s.handleGetGroup)

	api.HandleFunc("POST /api/v1/groups/{id}/members", s.handleAddMember)
	api.HandleFunc("GET /api/v1/groups/{id}/members", s.handleListMembers)
	api.HandleFunc("GET /api/v1/groups/{id}/members/{name}", s.handleGetMember)
	api.HandleFunc("GET /api/v1/groups/{id}/summary", s.handleSummary)

	api.HandleFunc("POST /api/v1/groups/{id}/contributions", s.handleContribute)
	api.HandleFunc("POST /api/v1/groups/{id}/payments", s.handlePay)
	api.HandleFunc("GET /api/v1/groups/{id}/round", s.handleRoundTracker)
	api.HandleFunc("GET /api/v1/groups/{id}/rounds", s.handleListRounds)
	api.HandleFunc("GET /api/v1/groups/{id}/transactions", s.handleListTransactions)
	api.HandleFunc("GET /api/v1/groups/{id}/export", s.handleExport)

	mux.Handle("/api/v1/groups", middleware.RequireAuth(s.tokens, api))
	mux.Handle("/api/v1/groups/", middleware.RequireAuth(s.tokens, api))

	return middleware.Logging(mux)
}

// requireGroup checks that the authenticated caller may act on the group in
// the URL. It writes the error response itself and returns ok=false when the
// caller may not proceed.
func (s *Server) requireGroup(w http.ResponseWriter, r *http.Request) (string, bool) {
	groupID := r.PathValue("id")
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeErrorStatus(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	if !claims.InGroup(groupID) {
		writeErrorStatus(w, http.StatusForbidden, "not a member of this group")
		return "", false
	}
	return groupID, true
}

// requireAdmin is requireGroup plus an ADMIN role check.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeErrorStatus(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if !claims.IsAdmin() {
		writeErrorStatus(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
