package invoices

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func form(customerID, amount, status string) url.Values {
	return url.Values{
		"customerId": {customerID},
		"amount":     {amount},
		"status":     {status},
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := NewSchema()

	t.Run("Valid form", func(t *testing.T) {
		fields, errs := schema.Validate(form("c1", "45.00", "pending"))

		require.Nil(t, errs)
		assert.Equal(t, "c1", fields.CustomerID)
		assert.Equal(t, "pending", fields.Status)
		assert.Equal(t, int64(4500), fields.AmountInCents())
	})

	t.Run("Missing customer", func(t *testing.T) {
		_, errs := schema.Validate(form("", "10", "paid"))

		require.NotNil(t, errs)
		assert.Equal(t, []string{"Please select a customer"}, errs["customerId"])
		assert.NotContains(t, errs, "amount")
		assert.NotContains(t, errs, "status")
	})

	t.Run("Blank customer is trimmed", func(t *testing.T) {
		_, errs := schema.Validate(form("   ", "10", "paid"))

		require.NotNil(t, errs)
		assert.Equal(t, []string{"Please select a customer"}, errs["customerId"])

		fields, errs := schema.Validate(form(" c1\t", "10", "paid"))
		require.Nil(t, errs)
		assert.Equal(t, "c1", fields.CustomerID)
	})

	t.Run("Amount not positive", func(t *testing.T) {
		for _, amount := range []string{"0", "-3", "", "  ", "abc", "0.00"} {
			_, errs := schema.Validate(form("c1", amount, "paid"))

			require.NotNil(t, errs, "amount %q", amount)
			assert.Equal(t, []string{"Please enter an amount greater than 0"}, errs["amount"], "amount %q", amount)
		}
	})

	t.Run("Amount too large for the amount column", func(t *testing.T) {
		for _, amount := range []string{"1e30", "184467440737095516.17", "21474836.48", "21474836.475", "9223372036854775807"} {
			_, errs := schema.Validate(form("c1", amount, "paid"))

			require.NotNil(t, errs, "amount %q", amount)
			assert.Equal(t, []string{"Please enter an amount greater than 0"}, errs["amount"], "amount %q", amount)
		}
	})

	t.Run("Largest storable amount", func(t *testing.T) {
		for _, amount := range []string{"21474836.47", "21474836.474"} {
			fields, errs := schema.Validate(form("c1", amount, "paid"))

			require.Nil(t, errs, "amount %q", amount)
			assert.Equal(t, int64(2147483647), fields.AmountInCents(), "amount %q", amount)
		}
	})

	t.Run("Status outside enum", func(t *testing.T) {
		for _, status := range []string{"", "overdue", "PAID"} {
			_, errs := schema.Validate(form("c1", "10", status))

			require.NotNil(t, errs, "status %q", status)
			assert.Equal(t, []string{"Please select an invoice status"}, errs["status"], "status %q", status)
		}
	})

	t.Run("All fields wrong", func(t *testing.T) {
		_, errs := schema.Validate(url.Values{})

		assert.Len(t, errs, 3)
	})

	t.Run("Id and date are ignored", func(t *testing.T) {
		values := form("c1", "1", "paid")
		values.Set("id", "client-id")
		values.Set("date", "1999-01-01")

		_, errs := schema.Validate(values)

		assert.Nil(t, errs)
	})
}

func TestAmountInCentsRounds(t *testing.T) {
	schema := NewSchema()
	cases := map[string]int64{
		"45.00":   4500,
		"0.01":    1,
		"19.999":  2000,
		"10.005":  1001,
		" 7.1 ":   710,
		"1234.56": 123456,
	}
	for amount, cents := range cases {
		fields, errs := schema.Validate(form("c1", amount, "paid"))

		require.Nil(t, errs, "amount %q", amount)
		assert.Equal(t, cents, fields.AmountInCents(), "amount %q", amount)
	}
}
