// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"millcreek_parks/internal/app"
	"millcreek_parks/internal/domain"
)

type Handlers struct {
	Q   *app.QueryService
	Ing *app.IngestionService
	Hub *app.Hub
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/parks", h.listParks)
	s.mux.Get("/v1/parks/{id}", h.getPark)
	s.mux.Get("/v1/parks/{id}/reviews", h.listReviews)
	s.mux.Post("/v1/parks/{id}/reviews", h.submitReview)
	s.mux.Get("/v1/compare", h.compare)
	s.mux.Get("/v1/events", h.events)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listParks(w http.ResponseWriter, r *http.Request) {
	views, err := h.Q.ListParks(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load parks")
		return
	}
	writeCached(w, r, views)
}

func (h *Handlers) getPark(w http.ResponseWriter, r *http.Request) {
	v, err := h.Q.GetPark(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownPark) {
			writeProblem(w, http.StatusNotFound, "Not Found", "park not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load park")
		return
	}
	writeCached(w, r, v)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	// Newest first; aligns with the index on (park, created_at, id)
	page := domain.PageQuery{Limit: limit, Sort: "-created_at"}
	out, err := h.Q.ListReviews(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownPark) {
			writeProblem(w, http.StatusNotFound, "Not Found", "park not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load reviews")
		return
	}
	writeCached(w, r, out)
}

type submitRequest struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	park, ok := h.Q.ResolvePark(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "park not found")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be JSON")
		return
	}
	draft, err := domain.NewReview(park.Name, req.User, req.Rating, req.Comment)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Review", err.Error())
		return
	}

	saved, err := h.Ing.Submit(r.Context(), draft)
	if err != nil {
		// persistence failed; the submitter may retry
		log.Error().Err(err).Str("park", park.Name).Msg("review submission failed")
		writeProblem(w, http.StatusBadGateway, "Submission Failed", "could not save the review, please retry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(saved); err != nil {
		log.Error().Err(err).Msg("failed to write submitReview body")
	}
}

func (h *Handlers) compare(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" || a == b {
		writeProblem(w, http.StatusBadRequest, "Invalid Comparison", "a and b must be two distinct park ids")
		return
	}
	cv, err := h.Q.Compare(r.Context(), a, b)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownPark) {
			writeProblem(w, http.StatusNotFound, "Not Found", "park not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not compare parks")
		return
	}
	writeCached(w, r, cv)
}

// events streams newly ingested reviews as server-sent events so the map can
// re-render without polling.
func (h *Handlers) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "Streaming Unsupported", "")
		return
	}
	ch, cancel := h.Hub.Subscribe(8)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case rv, open := <-ch:
			if !open {
				return
			}
			body, err := json.Marshal(rv)
			if err != nil {
				continue
			}
			if _, err := w.Write([]byte("event: review\ndata: " + string(body) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
