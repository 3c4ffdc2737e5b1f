package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"travelnest/internal/domain"
)

/********** field names (single source of truth) **********/

const (
	colHotels        = "hotels"
	colBookings      = "bookings"
	colUsers         = "users"
	fieldBookingUser = "user_id"
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on documents.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		var obj map[string]any
		switch t := cur.(type) {
		case map[string]any:
			obj = t
		case domain.Document:
			obj = t
		default:
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if s, ok := lookupAny(m, path).(string); ok {
		return s
	}
	return ""
}

// getFloatFlexible: number at path whatever the backend decoded it as.
func getFloatFlexible(m map[string]any, path string) (float64, bool) {
	switch v := lookupAny(m, path).(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// getIntFlexible: integer at path (float64 from JSON, int64 from Firestore).
func getIntFlexible(m map[string]any, path string) (int, bool) {
	switch v := lookupAny(m, path).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getBool(m map[string]any, path string) bool {
	switch v := lookupAny(m, path).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// getTime accepts native timestamps and their RFC 3339 text form.
func getTime(m map[string]any, path string) (time.Time, bool) {
	switch v := lookupAny(m, path).(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v != nil {
			return *v, true
		}
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// getStrings: accept []any or []string.
func getStrings(m map[string]any, path string) []string {
	switch raw := lookupAny(m, path).(type) {
	case []string:
		return append([]string(nil), raw...)
	case []any:
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			if s, ok := it.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

/********** hotel mapper **********/

func hotelToDoc(h domain.Hotel) domain.Document {
	return domain.Document{
		"id":          h.ID,
		"name":        h.Name,
		"description": h.Description,
		"location":    h.Location,
		"price":       h.Price,
		"rating":      h.Rating,
		"reviews":     h.Reviews,
		"images":      append([]string(nil), h.Images...),
		"amenities":   append([]string(nil), h.Amenities...),
		"category":    h.Category,
		"is_popular":  h.IsPopular,
		"is_featured": h.IsFeatured,
	}
}

func hotelFromDoc(s domain.Snapshot) (domain.Hotel, error) {
	d := s.Data
	id := lookupStr(d, "id")
	if id == "" {
		id = s.ID
	}
	name := lookupStr(d, "name")
	if id == "" || name == "" {
		return domain.Hotel{}, fmt.Errorf("hotel %q: missing id or name", s.ID)
	}
	price, ok := getFloatFlexible(d, "price")
	if !ok {
		return domain.Hotel{}, fmt.Errorf("hotel %q: missing price", s.ID)
	}
	rating, _ := getFloatFlexible(d, "rating")
	reviews, _ := getIntFlexible(d, "reviews")
	return domain.Hotel{
		ID:          id,
		Name:        name,
		Description: lookupStr(d, "description"),
		Location:    lookupStr(d, "location"),
		Price:       price,
		Rating:      rating,
		Reviews:     reviews,
		Images:      getStrings(d, "images"),
		Amenities:   getStrings(d, "amenities"),
		Category:    lookupStr(d, "category"),
		IsPopular:   getBool(d, "is_popular"),
		IsFeatured:  getBool(d, "is_featured"),
	}, nil
}

/********** booking mapper **********/

func bookingToDoc(b domain.Booking) domain.Document {
	return domain.Document{
		"user_id":          b.UserID,
		"hotel_id":         b.HotelID,
		"hotel_name":       b.HotelName,
		"check_in_date":    b.CheckInDate.UTC(),
		"check_out_date":   b.CheckOutDate.UTC(),
		"number_of_guests": b.NumberOfGuests,
		"total_price":      b.TotalPrice,
		"status":           string(b.Status),
		"created_at":       b.CreatedAt.UTC(),
	}
}

func bookingFromDoc(s domain.Snapshot) (domain.Booking, error) {
	d := s.Data
	b := domain.Booking{
		ID:        s.ID,
		UserID:    lookupStr(d, "user_id"),
		HotelID:   lookupStr(d, "hotel_id"),
		HotelName: lookupStr(d, "hotel_name"),
		Status:    domain.ParseBookingStatus(lookupStr(d, "status")),
	}
	if b.UserID == "" || b.HotelID == "" {
		return domain.Booking{}, fmt.Errorf("booking %q: missing user_id or hotel_id", s.ID)
	}
	var ok bool
	if b.CheckInDate, ok = getTime(d, "check_in_date"); !ok {
		return domain.Booking{}, fmt.Errorf("booking %q: bad check_in_date", s.ID)
	}
	if b.CheckOutDate, ok = getTime(d, "check_out_date"); !ok {
		return domain.Booking{}, fmt.Errorf("booking %q: bad check_out_date", s.ID)
	}
	if b.CreatedAt, ok = getTime(d, "created_at"); !ok {
		return domain.Booking{}, fmt.Errorf("booking %q: bad created_at", s.ID)
	}
	if b.NumberOfGuests, ok = getIntFlexible(d, "number_of_guests"); !ok {
		return domain.Booking{}, fmt.Errorf("booking %q: bad number_of_guests", s.ID)
	}
	if b.TotalPrice, ok = getFloatFlexible(d, "total_price"); !ok {
		return domain.Booking{}, fmt.Errorf("booking %q: bad total_price", s.ID)
	}
	return b, nil
}

/********** user mapper **********/

func userToDoc(u domain.User) domain.Document {
	return domain.Document{
		"full_name":  u.FullName,
		"email":      u.Email,
		"created_at": u.CreatedAt.UTC(),
	}
}

func userFromDoc(id string, d domain.Document) (domain.User, error) {
	fullName := lookupStr(d, "full_name")
	email := lookupStr(d, "email")
	createdAt, ok := getTime(d, "created_at")
	if fullName == "" || email == "" || !ok {
		return domain.User{}, domain.Wrap(domain.ErrUserRecordInvalid, fmt.Errorf("user %q: invalid user data", id))
	}
	return domain.User{ID: id, FullName: fullName, Email: email, CreatedAt: createdAt}, nil
}
