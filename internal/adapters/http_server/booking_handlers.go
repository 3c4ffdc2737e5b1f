package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"travelnest/internal/adapters/receipt"
	"travelnest/internal/app"
)

type bookingRequest struct {
	HotelID  string `json:"hotel_id" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   int    `json:"number_of_guests" validate:"required,min=1"`
}

// parseDate takes a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in, err := parseDate(req.CheckIn)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", "check_in must be YYYY-MM-DD or RFC 3339")
		return
	}
	out, err := parseDate(req.CheckOut)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", "check_out must be YYYY-MM-DD or RFC 3339")
		return
	}
	id, _ := app.CurrentIdentity(r.Context())
	b, err := h.Bookings.Place(r.Context(), id, app.BookingRequest{
		HotelID: req.HotelID, CheckIn: in, CheckOut: out, Guests: req.Guests,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/bookings/"+b.ID+"/receipt")
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	id, _ := app.CurrentIdentity(r.Context())
	state := app.NewBookingState(h.Repo, id.UserID)
	state.Refresh(r.Context())
	snap := state.Snapshot()
	snap.Bookings = nonNil(snap.Bookings)
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) receipt(w http.ResponseWriter, r *http.Request) {
	id, _ := app.CurrentIdentity(r.Context())
	b, err := h.Repo.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if b.UserID != id.UserID {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	guest := id.DisplayName
	if u, err := h.Auth.FetchUser(r.Context(), id.UserID); err == nil {
		guest = u.FullName
	}
	pdf, name, err := receipt.Build(b, guest, app.Nights(b.CheckInDate, b.CheckOutDate))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
