package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/penguins/internal/memory"
)

func (h *Handler) ListMemories(w http.ResponseWriter, r *http.Request) {
	memories, err := h.catalog.ListMemories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memories)
}

func (h *Handler) GetMemory(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.GetMemory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if m == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	var in memory.Input
	if !h.decode(w, r, &in) {
		return
	}
	m, err := h.catalog.CreateMemory(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	var patch memory.Patch
	if !h.decode(w, r, &patch) {
		return
	}
	m, err := h.catalog.UpdateMemory(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if m == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteMemory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MemoriesByYear(w http.ResponseWriter, r *http.Request) {
	groups, err := h.catalog.MemoriesByYear(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// OnThisDay handles GET /api/memories/on-this-day?date=YYYY-MM-DD. Without a
// date it uses today.
func (h *Handler) OnThisDay(w http.ResponseWriter, r *http.Request) {
	var day time.Time
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := time.Parse(time.DateOnly, s)
		if err != nil {
			writeBadRequest(w, "invalid request", "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	memories, err := h.catalog.OnThisDay(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memories)
}
