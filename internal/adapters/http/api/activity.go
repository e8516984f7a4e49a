package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// Default number of activity entries returned when limit is absent.
const defaultActivityLimit = 50

// ActivityHandler serves the recent engine activity feed.
type ActivityHandler struct {
	deps Dependencies
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(deps Dependencies) *ActivityHandler {
	return &ActivityHandler{deps: deps}
}

// HandleActivity handles GET /activity?limit=N requests.
func (h *ActivityHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	const op = "api.activity"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := defaultActivityLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: invalid limit", op, ErrBadRequest))
			return
		}
		n = parsed
	}
	actor := actorFrom(r.Context())
	events, err := h.deps.RecentActivity(r.Context(), n, actor)
	if err != nil {
		writeEngineError(w, actor, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
