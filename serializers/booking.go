package serializers

import (
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
)

// BookingRequest carries the client-settable booking fields. Name is not among
// them: the owner is always the authenticated caller.
type BookingRequest struct {
	NoOfGuests  *FlexibleString `json:"No_of_guests" form:"No_of_guests"`
	BookingDate *FlexibleString `json:"BookingDate" form:"BookingDate"`
}

type BookingFields struct {
	NoOfGuests  int
	BookingDate time.Time
}

func (r BookingRequest) Validate() (BookingFields, error) {
	var out BookingFields
	fe := FieldErrors{}

	if r.NoOfGuests == nil {
		fe.Add("No_of_guests", MsgRequired)
	} else if n, msgs := parseInt(string(*r.NoOfGuests)); msgs != nil {
		fe["No_of_guests"] = msgs
	} else {
		out.NoOfGuests = n
	}

	if r.BookingDate == nil {
		fe.Add("BookingDate", MsgRequired)
	} else if d, msgs := parseDate(string(*r.BookingDate)); msgs != nil {
		fe["BookingDate"] = msgs
	} else {
		out.BookingDate = d
	}

	if len(fe) > 0 {
		return BookingFields{}, fe
	}
	return out, nil
}

// NewBooking builds a booking owned by owner.
func (f BookingFields) NewBooking(owner string) models.Booking {
	return models.Booking{
		Name:        owner,
		NoOfGuests:  f.NoOfGuests,
		BookingDate: f.BookingDate,
	}
}

type BookingResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"Name"`
	NoOfGuests  int    `json:"No_of_guests"`
	BookingDate string `json:"BookingDate"`
}

func NewBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		NoOfGuests:  b.NoOfGuests,
		BookingDate: b.BookingDate.Format(DateLayout),
	}
}

func NewBookingListResponse(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
