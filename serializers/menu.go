package serializers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-booking/models"
)

type MenuRequest struct {
	Title     *CharString     `json:"Title" form:"Title"`
	Price     *FlexibleString `json:"Price" form:"Price"`
	Inventory *FlexibleString `json:"Inventory" form:"Inventory"`
}

// MenuFields holds validated values. A nil member was not supplied, which only
// happens for partial updates.
type MenuFields struct {
	Title     *string
	Price     *decimal.Decimal
	Inventory *int
}

// Validate checks every supplied field. Unless partial is set, all fields are required.
func (r MenuRequest) Validate(partial bool) (MenuFields, error) {
	var out MenuFields
	fe := FieldErrors{}

	if r.Title == nil {
		if !partial {
			fe.Add("Title", MsgRequired)
		}
	} else {
		title := strings.TrimSpace(string(*r.Title))
		switch {
		case title == "":
			fe.Add("Title", MsgBlank)
		case utf8.RuneCountInString(title) > titleMaxLength:
			fe.Add("Title", fmt.Sprintf("Ensure this field has no more than %d characters.", titleMaxLength))
		default:
			out.Title = &title
		}
	}

	if r.Price == nil {
		if !partial {
			fe.Add("Price", MsgRequired)
		}
	} else if price, msgs := parseDecimal(string(*r.Price)); msgs != nil {
		fe["Price"] = msgs
	} else {
		price = price.Round(priceDecimalPlaces)
		out.Price = &price
	}

	if r.Inventory == nil {
		if !partial {
			fe.Add("Inventory", MsgRequired)
		}
	} else if inv, msgs := parseInt(string(*r.Inventory)); msgs != nil {
		fe["Inventory"] = msgs
	} else {
		out.Inventory = &inv
	}

	if len(fe) > 0 {
		return MenuFields{}, fe
	}
	return out, nil
}

// Apply copies the supplied fields onto m.
func (f MenuFields) Apply(m *models.Menu) {
	if f.Title != nil {
		m.Title = *f.Title
	}
	if f.Price != nil {
		m.Price = *f.Price
	}
	if f.Inventory != nil {
		m.Inventory = *f.Inventory
	}
}

type MenuResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"Title"`
	Price     string `json:"Price"`
	Inventory int    `json:"Inventory"`
}

func NewMenuResponse(m models.Menu) MenuResponse {
	return MenuResponse{
		ID:        m.ID,
		Title:     m.Title,
		Price:     m.Price.StringFixed(priceDecimalPlaces),
		Inventory: m.Inventory,
	}
}

func NewMenuListResponse(menus []models.Menu) []MenuResponse {
	out := make([]MenuResponse, 0, len(menus))
	for _, m := range menus {
		out = append(out, NewMenuResponse(m))
	}
	return out
}
