package handlers

import (
	"net/http"

	"github.com/borex256/century-music-empire/pkg/label/catalog"
)

// CatalogHandler serves the read-only label catalog: roster, vault,
// team, events, gallery, and distribution features.
type CatalogHandler struct {
	Store catalog.Store
}

func (h CatalogHandler) Artists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Store.Artists(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artists)
}

func (h CatalogHandler) Artist(w http.ResponseWriter, r *http.Request) {
	artist, err := h.Store.Artist(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (h CatalogHandler) Team(w http.ResponseWriter, r *http.Request) {
	team, err := h.Store.Team(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h CatalogHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.Events(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h CatalogHandler) Playlist(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.Store.Playlist(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

// Vault groups releases with their tracks. The artist query parameter
// narrows to one roster name; absent or "all" keeps everything.
func (h CatalogHandler) Vault(w http.ResponseWriter, r *http.Request) {
	artist := r.URL.Query().Get("artist")
	entries, err := h.Store.Vault(r.Context(), artist)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h CatalogHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Gallery(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h CatalogHandler) DistributionFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.Store.DistributionFeatures(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, features)
}
