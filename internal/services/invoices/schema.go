package invoices

import (
	"math"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	fieldCustomerID = "customerId"
	fieldAmount     = "amount"
	fieldStatus     = "status"
)

var fieldMessages = map[string]string{
	fieldCustomerID: "Please select a customer",
	fieldAmount:     "Please enter an amount greater than 0",
	fieldStatus:     "Please select an invoice status",
}

// maxAmountInCents is the largest value the invoices.amount INT column holds.
const maxAmountInCents = math.MaxInt32

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(maxAmountInCents)
)

// FieldErrors groups validation messages by submitted field name.
type FieldErrors map[string][]string

// Fields is a validated, coerced invoice form.
type Fields struct {
	CustomerID string          `json:"customerId" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	Status     string          `json:"status" validate:"oneof=pending paid"`
}

// AmountInCents converts the validated amount into minor units. Validate
// only accepts amounts that fit maxAmountInCents.
func (f Fields) AmountInCents() int64 {
	return toCents(f.Amount).IntPart()
}

func toCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(hundred).Round(0)
}

// Schema validates invoice forms. Build it once with NewSchema and share it;
// it holds no per-request state.
type Schema struct {
	validate *validator.Validate
}

func NewSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &Schema{validate: v}
}

// Validate coerces form into Fields. Id and date are not read from the form.
func (s *Schema) Validate(form url.Values) (Fields, FieldErrors) {
	fields := Fields{
		CustomerID: strings.TrimSpace(form.Get(fieldCustomerID)),
		Amount:     coerceAmount(form.Get(fieldAmount)),
		Status:     form.Get(fieldStatus),
	}

	err := s.validate.Struct(fields)
	if err == nil {
		return fields, nil
	}

	errs := FieldErrors{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// only reachable on a programming error in Fields
		for field, msg := range fieldMessages {
			errs[field] = []string{msg}
		}
		return Fields{}, errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = append(errs[fe.Field()], fieldMessages[fe.Field()])
	}
	return Fields{}, errs
}

// coerceAmount mirrors numeric coercion of form input: blank is zero, and
// anything unparsable or too large for the amount column becomes zero so the
// amount rule rejects it.
func coerceAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || toCents(d).GreaterThan(maxCents) {
		return decimal.Zero
	}
	return d
}
