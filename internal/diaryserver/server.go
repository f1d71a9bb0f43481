// Package diaryserver is an in-memory implementation of the remote diary
// API. It backs the HTTP client tests and can be run locally with
// cmd/diaryserver so that publishing works without the public service.
package diaryserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/client/models"
	"github.com/dmitrijs2005/travelbook/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxRequestBytes bounds POST bodies; images arrive inline as Base64.
const maxRequestBytes = 64 << 20

type record struct {
	id           string
	title        string
	text         string
	locationName *string
	dateTime     string
	images       [][]byte
}

// Server keeps diary entries in memory, in creation order.
type Server struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*record

	prefix string
	log    logging.Logger
	router *mux.Router
}

// New builds a server whose routes live under prefix, e.g. "/api/v1".
func New(prefix string, log logging.Logger) *Server {
	s := &Server{
		entries: make(map[string]*record),
		prefix:  prefix,
		log:     log,
		router:  mux.NewRouter(),
	}

	r := s.router
	if prefix != "" {
		r = s.router.PathPrefix(prefix).Subrouter()
	}
	r.Use(s.logRequests)
	r.HandleFunc("/diary", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/diary", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/diary/{id}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/diary/{id}/images/{n:[0-9]+}", s.handleImage).Methods(http.MethodGet)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Len reports how many entries are stored.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Info(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "status", sw.status, "took", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := make([]models.RemoteEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.toRemote(r, s.entries[id]))
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.RLock()
	rec, ok := s.entries[id]
	var out models.RemoteEntry
	if ok {
		out = s.toRemote(r, rec)
	}
	s.mu.RUnlock()

	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("entry %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	n, err := strconv.Atoi(vars["n"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad image index")
		return
	}

	s.mu.RLock()
	rec, ok := s.entries[vars["id"]]
	var img []byte
	if ok && n < len(rec.images) {
		img = rec.images[n]
	}
	s.mu.RUnlock()

	if img == nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(img))
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	_, _ = w.Write(img)
}

// createBody uses pointers to tell missing fields from empty ones.
type createBody struct {
	Title        *string  `json:"title"`
	Text         *string  `json:"text"`
	LocationName *string  `json:"locationName"`
	Images       []string `json:"images"`
	DateTime     *string  `json:"dateTime"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	rec, err := newRecord(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.entries[rec.id] = rec
	s.order = append(s.order, rec.id)
	s.mu.Unlock()

	s.log.Info(r.Context(), "entry created", "id", rec.id, "images", len(rec.images))
	writeJSON(w, http.StatusCreated, models.CreatedResponse{ID: rec.id})
}

func newRecord(b createBody) (*record, error) {
	switch {
	case b.Title == nil:
		return nil, errors.New("title is required")
	case b.Text == nil:
		return nil, errors.New("text is required")
	case b.DateTime == nil:
		return nil, errors.New("dateTime is required")
	}
	if _, err := time.Parse(time.RFC3339Nano, *b.DateTime); err != nil {
		return nil, fmt.Errorf("dateTime: %w", err)
	}

	images := make([][]byte, 0, len(b.Images))
	for i, enc := range b.Images {
		img, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("images[%d]: %w", i, err)
		}
		images = append(images, img)
	}

	return &record{
		id:           uuid.NewString(),
		title:        *b.Title,
		text:         *b.Text,
		locationName: b.LocationName,
		dateTime:     *b.DateTime,
		images:       images,
	}, nil
}

// toRemote renders rec with absolute image URLs for the requesting host.
// Callers hold s.mu.
func (s *Server) toRemote(r *http.Request, rec *record) models.RemoteEntry {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	images := make([]models.RemoteImage, 0, len(rec.images))
	for i := range rec.images {
		images = append(images, models.RemoteImage{
			URL: fmt.Sprintf("%s://%s%s/diary/%s/images/%d", scheme, r.Host, s.prefix, rec.id, i),
		})
	}

	return models.RemoteEntry{
		ID:           rec.id,
		Title:        rec.title,
		Text:         rec.text,
		Images:       images,
		LocationName: rec.locationName,
		DateTime:     rec.dateTime,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
