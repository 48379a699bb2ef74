package identity

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gatekit/gatekit/svc/auth"
)

// RequireAccess is middleware admitting only requests whose URL path the
// current snapshot grants. Unauthenticated requests get 401, denied ones 403.
// A snapshot still loading denies, matching the deny-by-default stance.
//
// Admitted requests carry the snapshot and user in the request context.
func RequireAccess(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := m.Snapshot()

			if !snap.Authenticated() {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if snap.Loading || !snap.Can(r.URL.Path) {
				writeError(w, http.StatusForbidden, "access denied")
				return
			}

			ctx := WithSnapshot(r.Context(), snap)
			ctx = auth.WithUser(ctx, snap.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Routes returns the introspection endpoints:
//
//	GET /me      the current authorization snapshot
//	GET /me/can  whether the snapshot grants a path, e.g. /me/can?path=/admin
func Routes(m *Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, snapshotResponse(m.Snapshot()))
	})

	r.Get("/me/can", func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Query().Get("path")
		if path == "" {
			writeError(w, http.StatusBadRequest, "missing path query parameter")
			return
		}

		snap := m.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"path":    path,
			"allowed": !snap.Loading && snap.Can(path),
		})
	})

	return r
}

type meResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
	Roles         []string   `json:"roles"`
	Paths         []string   `json:"paths"`
	Loading       bool       `json:"loading"`
}

func snapshotResponse(snap Snapshot) meResponse {
	resp := meResponse{
		Authenticated: snap.Authenticated(),
		User:          snap.User,
		Roles:         snap.Roles,
		Paths:         snap.Paths.List(),
		Loading:       snap.Loading,
	}
	if resp.Roles == nil {
		resp.Roles = []string{}
	}
	if resp.Paths == nil {
		resp.Paths = []string{}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
