// Package serializers converts request bodies into validated field values and
// models into their JSON representations.
package serializers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	MsgRequired      = "This field is required."
	MsgBlank         = "This field may not be blank."
	MsgInvalidNumber = "A valid number is required."
	MsgInvalidInt    = "A valid integer is required."
	MsgInvalidDate   = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgIncorrectType = "Incorrect type."
	MsgNotAString    = "Not a valid string."

	DateLayout = "2006-01-02"

	titleMaxLength     = 255

	priceMaxDigits     = 10
	priceDecimalPlaces = 2
)

func init() {
	// Report validator failures under the JSON field name the client sent.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ParseError is a request body that could not be decoded at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "JSON parse error - " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// FlexibleString accepts a JSON string or any scalar literal and keeps its text.
// Form values arrive as plain strings.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}
	*f = FlexibleString(bytes.TrimSpace(b))
	return nil
}

// CharString accepts a JSON string or number, numbers keeping their literal text.
// Booleans, arrays and objects are rejected.
type CharString string

func (s *CharString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = CharString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = CharString(n.String())
		return nil
	}
	return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(*s)}
}

// Bind decodes the body (JSON or form, chosen by content type) into obj.
// It returns FieldErrors for field-level problems and *ParseError for undecodable input.
// An empty body decodes to the zero value, which is still validated.
func Bind(c *gin.Context, obj interface{}) error {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fe := FieldErrors{}
		for _, ve := range verrs {
			fe.Add(ve.Field(), validationMessage(ve))
		}
		return fe
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if typeErr.Type == reflect.TypeOf(CharString("")) {
			return FieldErrors{typeErr.Field: {MsgNotAString}}
		}
		return FieldErrors{typeErr.Field: {MsgIncorrectType}}
	}

	return &ParseError{Err: err}
}

func validationMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", ve.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", ve.Param())
	case "email":
		return "Enter a valid email address."
	default:
		return "Invalid value."
	}
}

func parseDecimal(raw string) (decimal.Decimal, []string) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, []string{MsgInvalidNumber}
	}

	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	exp := int(d.Exponent())
	var total, places int
	switch {
	case exp >= 0:
		total, places = digits+exp, 0
	case -exp > digits:
		total, places = -exp, -exp
	default:
		total, places = digits, -exp
	}

	var msgs []string
	if total > priceMaxDigits {
		msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %d digits in total.", priceMaxDigits))
	}
	if places > priceDecimalPlaces {
		msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %d decimal places.", priceDecimalPlaces))
	}
	if whole := total - places; whole > priceMaxDigits-priceDecimalPlaces {
		msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", priceMaxDigits-priceDecimalPlaces))
	}
	if len(msgs) > 0 {
		return decimal.Decimal{}, msgs
	}
	return d, nil
}

func parseInt(raw string) (int, []string) {
	s := strings.TrimSpace(raw)
	// "10.0" is an integer too.
	if i := strings.IndexByte(s, '.'); i >= 0 && strings.Trim(s[i+1:], "0") == "" {
		s = s[:i]
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, []string{MsgInvalidInt}
	}
	return int(n), nil
}

func parseDate(raw string) (time.Time, []string) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, []string{MsgInvalidDate}
	}
	return t, nil
}
