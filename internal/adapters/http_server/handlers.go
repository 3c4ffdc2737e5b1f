package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"travelnest/internal/app"
	"travelnest/internal/domain"
)

// TokenService issues and checks bearer tokens.
type TokenService interface {
	Issue(id domain.Identity) (string, time.Time, error)
	Verify(ctx context.Context, token string) (domain.Identity, error)
	Revoke(ctx context.Context, token string) error
}

type BookingRepo interface {
	ListBookingsForUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (domain.Booking, error)
}

type Handlers struct {
	Catalog  *app.CatalogState
	Q        *app.QueryService
	Auth     *app.AuthService
	Bookings *app.BookingService
	Repo     BookingRepo
	Tokens   TokenService
	Events   *app.Broadcaster
	Timeout  time.Duration

	upgrader *websocket.Upgrader
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	auth := RequireAuth(h.Tokens)
	h.upgrader = newUpgrader(s.origins)

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(r chi.Router) {
		r.Use(Timeout(timeout))

		r.Get("/v1/hotels", h.listHotels)
		r.Post("/v1/hotels/reload", h.reloadHotels)
		r.Get("/v1/hotels/featured", h.featured)
		r.Get("/v1/hotels/popular", h.popular)
		r.Get("/v1/hotels/recommended", h.recommended)
		r.Get("/v1/hotels/offers", h.offers)
		r.Get("/v1/hotels/categories", h.categories)
		r.Get("/v1/hotels/{id}", h.getHotel)

		r.Post("/v1/auth/signup", h.signUp)
		r.Post("/v1/auth/signin", h.signIn)
		r.Post("/v1/auth/password-reset", h.passwordReset)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/v1/auth/signout", h.signOut)
			r.Get("/v1/me", h.me)
			r.Post("/v1/bookings", h.createBooking)
			r.Get("/v1/bookings", h.listBookings)
			r.Get("/v1/bookings/{id}/receipt", h.receipt)
		})
	})

	// long-lived; no request timeout
	s.mux.With(auth).Get("/v1/bookings/stream", h.streamBookings)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps error kinds to status codes. Credential and user record
// messages are meant for the user and are passed through as the detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCredential):
		writeProblem(w, http.StatusBadRequest, "Credential Error", domain.Cause(err).Error())
	case errors.Is(err, domain.ErrUserRecordInvalid):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid User Record", "invalid user data")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrBookingPersistFailed):
		writeProblem(w, http.StatusBadGateway, "Booking Failed", domain.Cause(err).Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Catalog Unavailable", domain.Cause(err).Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeProblem(w, http.StatusGatewayTimeout, "Timeout", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
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

// writeCached answers 304 when the client already holds this version.
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
		log.Error().Err(err).Msg("failed to write body")
	}
}

// ---- hotels ----

type hotelsResponse struct {
	Hotels  []domain.Hotel `json:"hotels"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap := h.Catalog.Snapshot()
	writeCached(w, r, hotelsResponse{
		Hotels:  nonNil(app.FilterHotels(snap.All, q.Get("category"), q.Get("q"))),
		Loading: snap.Loading,
		Error:   snap.LastError,
	})
}

func (h *Handlers) reloadHotels(w http.ResponseWriter, r *http.Request) {
	h.Catalog.Load(r.Context())
	snap := h.Catalog.Snapshot()
	writeJSON(w, http.StatusOK, hotelsResponse{Hotels: nonNil(snap.All), Error: snap.LastError})
}

func (h *Handlers) featured(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, nonNil(h.Catalog.Snapshot().Featured))
}

func (h *Handlers) popular(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, nonNil(h.Catalog.Snapshot().Popular))
}

func (h *Handlers) recommended(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(h.Catalog.Recommended()))
}

func (h *Handlers) offers(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.Catalog.SpecialOffers())
}

func (h *Handlers) categories(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, app.Categories)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Q.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
			return
		}
		writeError(w, err)
		return
	}
	writeCached(w, r, hotel)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
