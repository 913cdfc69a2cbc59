// Package api exposes the HTTP surface of the goals service. Handlers
// translate store and policy outcomes into the four-way error taxonomy:
// 401 unauthenticated, 403 forbidden (no org, or insufficient role),
// 400 malformed payload, 500 storage failure. Every failure is converted
// here; nothing propagates as an uncaught fault.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stafflens/goalboard/internal/auth"
	httpmiddleware "github.com/stafflens/goalboard/internal/http"
	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/policy"
	"github.com/stafflens/goalboard/internal/store"
	"github.com/stafflens/goalboard/internal/telemetry"
	"github.com/stafflens/goalboard/internal/tenant"
)

// maxBodyBytes caps the save payload. Goal sets are tiny; anything larger
// is a malformed or hostile request.
const maxBodyBytes = 64 * 1024

// Handler serves the goals API.
type Handler struct {
	directory   *tenant.Directory
	goals       store.GoalsStore
	memberships store.MembershipStore
	principals  store.PrincipalStore
	audit       store.AuditStore
}

// NewHandler creates the API handler from its collaborators.
func NewHandler(
	directory *tenant.Directory,
	goals store.GoalsStore,
	memberships store.MembershipStore,
	principals store.PrincipalStore,
	audit store.AuditStore,
) *Handler {
	return &Handler{
		directory:   directory,
		goals:       goals,
		memberships: memberships,
		principals:  principals,
		audit:       audit,
	}
}

// Register mounts the API routes on the mux. Authentication is applied by
// the caller; every route here assumes the middleware already rejected
// requests without a valid token.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/goals", h.GetGoals)
	mux.HandleFunc("POST /api/goals", h.SaveGoals)
	mux.HandleFunc("GET /api/org", h.GetOrganization)
	mux.HandleFunc("GET /api/members", h.ListMembers)
	mux.HandleFunc("GET /api/audit", h.ListAudit)
}

// GetGoals handles GET /api/goals.
// Read is open to any member of the organization; no role check.
func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	org, ok := h.resolveOrganization(w, r, principal.PrincipalID)
	if !ok {
		return
	}

	goals, err := h.goals.Get(ctx, org.OrgID)
	if err != nil {
		telemetry.GetMetrics().StoreErrorsTotal.Add(ctx, 1)
		zerolog.Ctx(ctx).Error().Err(err).Str("org_id", org.OrgID.String()).Msg("Failed to fetch goals")
		writeError(w, http.StatusInternalServerError, "failed to fetch goals")
		return
	}

	telemetry.GetMetrics().GoalsFetchedTotal.Add(ctx, 1)
	telemetry.GetMetrics().GoalsRequestDuration.Record(ctx, float64(time.Since(started).Milliseconds()))

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// SaveGoals handles POST /api/goals.
// The submitted mapping replaces the stored record wholesale: keys omitted
// from the payload are dropped, not merged. Role is re-evaluated on every
// request.
func (h *Handler) SaveGoals(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	org, ok := h.resolveOrganization(w, r, principal.PrincipalID)
	if !ok {
		return
	}

	role, err := h.directory.ResolveRole(ctx, principal.PrincipalID, org.OrgID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotAMember) {
			writeError(w, http.StatusForbidden, "failed to verify membership")
			return
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to resolve role")
		writeError(w, http.StatusInternalServerError, "failed to verify membership")
		return
	}

	if err := policy.AuthorizeGoalWrite(role); err != nil {
		telemetry.GetMetrics().GoalsSaveDeniedTotal.Add(ctx, 1)
		zerolog.Ctx(ctx).Warn().
			Str("principal_id", principal.PrincipalID.String()).
			Str("role", string(role)).
			Msg("Goal save denied by policy")
		writeError(w, http.StatusForbidden, "only owners and admins can modify goals")
		return
	}

	var goals models.GoalSet
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&goals); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if goals == nil {
		// "null" decodes without error but is not a mapping
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	record, err := h.goals.Upsert(ctx, org.OrgID, goals)
	if err != nil {
		telemetry.GetMetrics().GoalsSaveErrorsTotal.Add(ctx, 1)
		zerolog.Ctx(ctx).Error().Err(err).Str("org_id", org.OrgID.String()).Msg("Failed to save goals")
		writeError(w, http.StatusInternalServerError, "failed to save goals")
		return
	}

	h.recordAudit(r, org.OrgID, principal.PrincipalID, record.Goals)

	telemetry.GetMetrics().GoalsSavedTotal.Add(ctx, 1)
	telemetry.GetMetrics().GoalsRequestDuration.Record(ctx, float64(time.Since(started).Milliseconds()))

	zerolog.Ctx(ctx).Info().
		Str("org_id", org.OrgID.String()).
		Str("org_name", org.Name).
		Interface("goals", record.Goals).
		Time("updated_at", record.UpdatedAt).
		Msg("Goals saved")

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"goals":   record.Goals,
	})
}

// GetOrganization handles GET /api/org, returning the caller's resolved
// organization for the settings area.
func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	org, ok := h.resolveOrganization(w, r, principal.PrincipalID)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"organization": map[string]any{
			"id":   org.OrgID,
			"name": org.Name,
			"slug": org.Slug,
		},
	})
}

// memberView is the wire shape of a membership listing row.
type memberView struct {
	PrincipalID uuid.UUID `json:"principalId"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// ListMembers handles GET /api/members, listing the caller's organization
// memberships. Open to any member.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	org, ok := h.resolveOrganization(w, r, principal.PrincipalID)
	if !ok {
		return
	}

	memberships, err := h.memberships.ListByOrganization(ctx, org.OrgID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to list memberships")
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	members := make([]memberView, 0, len(memberships))
	for _, m := range memberships {
		view := memberView{
			PrincipalID: m.PrincipalID,
			Role:        string(m.Role),
			JoinedAt:    m.CreatedAt,
		}
		// Directory records are best-effort display data
		if p, err := h.principals.Get(ctx, m.PrincipalID); err == nil {
			view.Name = p.Name
			view.Email = p.Email
		}
		members = append(members, view)
	}

	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

// auditView is the wire shape of an audit log row.
type auditView struct {
	ID          uuid.UUID      `json:"id"`
	PrincipalID uuid.UUID      `json:"principalId"`
	Action      string         `json:"action"`
	Detail      map[string]any `json:"detail"`
	ClientIP    string         `json:"clientIp,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ListAudit handles GET /api/audit, returning the organization's audit log
// newest-first. Open to any member.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal := auth.PrincipalFromContext(ctx)
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	org, ok := h.resolveOrganization(w, r, principal.PrincipalID)
	if !ok {
		return
	}

	entries, err := h.audit.ListByOrganization(ctx, org.OrgID, 0)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to list audit entries")
		writeError(w, http.StatusInternalServerError, "failed to list audit entries")
		return
	}

	views := make([]auditView, 0, len(entries))
	for _, e := range entries {
		views = append(views, auditView{
			ID:          e.EntryID,
			PrincipalID: e.PrincipalID,
			Action:      e.Action,
			Detail:      e.Detail,
			ClientIP:    e.ClientIP,
			CreatedAt:   e.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": views})
}

// resolveOrganization resolves the caller's organization, writing the
// appropriate error response on failure. Returns ok=false when a response
// has already been written.
func (h *Handler) resolveOrganization(w http.ResponseWriter, r *http.Request, principalID uuid.UUID) (*models.Organization, bool) {
	org, err := h.directory.ResolveOrganization(r.Context(), principalID)
	if err != nil {
		if errors.Is(err, tenant.ErrNoOrganization) {
			writeError(w, http.StatusForbidden, "user is not a member of any organization")
			return nil, false
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to resolve organization")
		writeError(w, http.StatusInternalServerError, "failed to resolve organization")
		return nil, false
	}
	return org, true
}

// recordAudit appends an audit entry for a successful save. Audit is
// observability, not behavior: failures are logged and the save still
// succeeds.
func (h *Handler) recordAudit(r *http.Request, orgID, principalID uuid.UUID, goals models.GoalSet) {
	ctx := r.Context()

	detail := make(map[string]any, len(goals))
	for k, v := range goals {
		detail[k] = v
	}

	entry := &models.AuditEntry{
		EntryID:     uuid.Must(uuid.NewV7()),
		OrgID:       orgID,
		PrincipalID: principalID,
		Action:      models.AuditActionGoalsSaved,
		Detail:      detail,
		ClientIP:    httpmiddleware.ClientIPFromContext(ctx),
		CreatedAt:   time.Now(),
	}

	if err := h.audit.Append(ctx, entry); err != nil {
		telemetry.GetMetrics().AuditAppendErrorsTotal.Add(ctx, 1)
		log.Error().Err(err).Str("org_id", orgID.String()).Msg("Failed to append audit entry")
		return
	}

	telemetry.GetMetrics().AuditEntriesTotal.Add(ctx, 1)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes the error taxonomy shape: {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
