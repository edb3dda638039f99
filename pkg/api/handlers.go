// Package api exposes the suggestion flow over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/messages"
	"github.com/korjavin/fridgechef/pkg/models"
)

const (
	defaultRecipeLimit = 20
	maxRecipeLimit     = 100
	maxBodyBytes       = 1 << 20
)

// NewRouter wires up all routes with the provided suggestion service.
// minScore hides weak matches from the rendered text.
func NewRouter(svc *chef.Service, minScore float64, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.New("api")
	}
	h := &handler{svc: svc, minScore: minScore, logger: log}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/suggestions", h.handleSuggestions)
		r.Post("/matches", h.handleMatches)
		r.Post("/clean", handleClean)
		r.Get("/recipes", h.handleRecipes)
	})

	return r
}

type handler struct {
	svc      *chef.Service
	minScore float64
	logger   *logger.Logger
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok")) //nolint:errcheck
}

// --- suggestions ---

type ingredientsRequest struct {
	Ingredients []string `json:"ingredients"`
	Detected    []string `json:"detected"`
}

func (req ingredientsRequest) query() *ingredient.Query {
	q := ingredient.NewQuery()
	q.AddDetected(req.Detected...)
	for _, item := range req.Ingredients {
		q.AddManual(item)
	}
	return q
}

type suggestionResponse struct {
	chef.Suggestion
	Text string `json:"text"`
}

func (h *handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req ingredientsRequest
	if !decode(w, r, &req) {
		return
	}
	s := h.svc.Suggest(r.Context(), req.query())
	jsonOK(w, suggestionResponse{
		Suggestion: s,
		Text:       messages.FormatSuggestion(s, h.minScore),
	})
}

// --- matches ---

type matchesResponse struct {
	Query   []string         `json:"query"`
	Matches []chef.MatchView `json:"matches"`
}

func (h *handler) handleMatches(w http.ResponseWriter, r *http.Request) {
	var req ingredientsRequest
	if !decode(w, r, &req) {
		return
	}
	q := req.query()
	resp := matchesResponse{Query: q.Raw(), Matches: []chef.MatchView{}}
	if !q.Empty() {
		resp.Matches = h.svc.Matches(q)
	}
	jsonOK(w, resp)
}

// --- clean ---

type cleanRequest struct {
	Items []string `json:"items"`
}

type cleanResponse struct {
	Items []string `json:"items"`
}

func handleClean(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if !decode(w, r, &req) {
		return
	}
	jsonOK(w, cleanResponse{Items: ingredient.CleanAll(req.Items)})
}

// --- recipes ---

type recipesResponse struct {
	Total   int             `json:"total"`
	Source  string          `json:"source"`
	Recipes []models.Recipe `json:"recipes"`
}

func (h *handler) handleRecipes(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecipeLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRecipeLimit)
	}
	c := h.svc.Corpus()
	jsonOK(w, recipesResponse{
		Total:   c.Len(),
		Source:  string(c.Source()),
		Recipes: c.Head(limit),
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
