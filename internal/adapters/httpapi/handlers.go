package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/devbush/likewrapped/internal/application"
	"github.com/devbush/likewrapped/internal/domain"
)

// AuthorResponse is one ranked author on the wire
type AuthorResponse struct {
	Rank       int    `json:"rank"`
	Handle     string `json:"handle"`
	AvatarURL  string `json:"avatar_url"`
	Count      int    `json:"count"`
	ProfileURL string `json:"profile_url"`
}

// WrappedResponse is the body of GET /api/v1/wrapped/{account}
type WrappedResponse struct {
	Account   string           `json:"account"`
	Since     string           `json:"since"`
	Until     *string          `json:"until"`
	Identity  string           `json:"identity"`
	LikeCount int              `json:"like_count"`
	FromCache bool             `json:"from_cache"`
	FetchedAt time.Time        `json:"fetched_at"`
	Authors   []AuthorResponse `json:"authors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewWrappedResponse converts a service result for the wire
func NewWrappedResponse(result *application.WrappedResult) WrappedResponse {
	resp := WrappedResponse{
		Account:   result.Account.Handle,
		Since:     result.Window.Since.UTC().Format(time.RFC3339),
		Identity:  string(result.Identity),
		LikeCount: result.LikeCount,
		FromCache: result.FromCache,
		FetchedAt: result.FetchedAt,
		Authors:   make([]AuthorResponse, 0, len(result.Authors)),
	}
	if result.Window.Bounded() {
		until := result.Window.Until.UTC().Format(time.RFC3339)
		resp.Until = &until
	}
	for i, a := range result.Authors {
		resp.Authors = append(resp.Authors, AuthorResponse{
			Rank:       i + 1,
			Handle:     a.Author.Handle,
			AvatarURL:  a.Author.AvatarURL,
			Count:      a.Count,
			ProfileURL: a.Author.ProfileURL(),
		})
	}
	return resp
}

// WrappedHandler serves rankings
type WrappedHandler struct {
	ranker   Ranker
	defaults Defaults
}

// GetWrapped handles GET /api/v1/wrapped/{account}
func (h *WrappedHandler) GetWrapped(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context()).With("handler", "GetWrapped")

	req, err := h.parseRequest(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.ranker.TopAuthors(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, domain.ErrAccountNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
		return
	default:
		logger.Error("ranking failed", "account", req.Account, "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "failed to rank liked authors")
		return
	}

	RespondWithJSON(w, http.StatusOK, NewWrappedResponse(result))
}

func (h *WrappedHandler) parseRequest(r *http.Request) (application.WrappedRequest, error) {
	q := r.URL.Query()

	req := application.WrappedRequest{
		Account:  chi.URLParam(r, "account"),
		Since:    q.Get("since"),
		Until:    q.Get("until"),
		TopN:     h.defaults.Top,
		Identity: domain.AuthorIdentity(q.Get("identity")),
	}
	if req.Since == "" {
		req.Since = h.defaults.Since
	}
	if req.Identity == "" {
		req.Identity = domain.AuthorIdentity(h.defaults.Identity)
	}
	if top := q.Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil {
			return req, errors.New("top must be an integer")
		}
		req.TopN = n
	}

	return req, nil
}

// Health handles GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RespondWithJSON writes payload with the given status
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// WriteJSONError writes {"error": message}
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, errorResponse{Error: message})
}
