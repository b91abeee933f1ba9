package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/penguins/internal/catalog"
	"github.com/at-ishikawa/penguins/internal/penguin"
)

// ListPenguins handles GET /api/penguins?q=&tag=&sort=.
func (h *Handler) ListPenguins(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sortField, err := catalog.ParseSortField(query.Get("sort"))
	if err != nil {
		writeBadRequest(w, "invalid request", err.Error())
		return
	}

	penguins, err := h.catalog.ListPenguins(r.Context(), catalog.PenguinQuery{
		Search: query.Get("q"),
		Tag:    query.Get("tag"),
		Sort:   sortField,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, penguins)
}

func (h *Handler) GetPenguin(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetPenguin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreatePenguin(w http.ResponseWriter, r *http.Request) {
	var in penguin.Input
	if !h.decode(w, r, &in) {
		return
	}
	p, err := h.catalog.CreatePenguin(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePenguin(w http.ResponseWriter, r *http.Request) {
	var patch penguin.Patch
	if !h.decode(w, r, &patch) {
		return
	}
	p, err := h.catalog.UpdatePenguin(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePenguin succeeds whether or not the penguin existed.
func (h *Handler) DeletePenguin(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeletePenguin(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPenguinMemories(w http.ResponseWriter, r *http.Request) {
	memories, err := h.catalog.ListMemoriesByPenguin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memories)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Gallery(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
