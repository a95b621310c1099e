package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validCandidate() DonationCandidate {
	return DonationCandidate{
		DonorName: strPtr("Test Donor"),
		Amount:    floatPtr(50),
		Currency:  strPtr("EUR"),
		Message:   strPtr("Test donation"),
	}
}

func TestValidatorAcceptsValidCandidate(t *testing.T) {
	v := NewValidator()

	got, err := v.Validate(validCandidate())
	require.NoError(t, err)
	assert.Equal(t, "Test Donor", got.DonorName)
	assert.Equal(t, 50.0, got.Amount)
	assert.Equal(t, "EUR", got.Currency)
	require.NotNil(t, got.Message)
	assert.Equal(t, "Test donation", *got.Message)
}

func TestValidatorMessageOptional(t *testing.T) {
	c := validCandidate()
	c.Message = nil

	got, err := NewValidator().Validate(c)
	require.NoError(t, err)
	assert.Nil(t, got.Message)
}

func TestValidatorKeepsMessageText(t *testing.T) {
	c := validCandidate()
	c.Message = strPtr("")

	got, err := NewValidator().Validate(c)
	require.NoError(t, err)
	require.NotNil(t, got.Message)
	assert.Equal(t, "", *got.Message)
}

func TestValidatorRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *DonationCandidate)
		field  string
	}{
		{name: "zero amount", mutate: func(c *DonationCandidate) { c.Amount = floatPtr(0) }, field: "amount"},
		{name: "negative amount", mutate: func(c *DonationCandidate) { c.Amount = floatPtr(-10) }, field: "amount"},
		{name: "missing amount", mutate: func(c *DonationCandidate) { c.Amount = nil }, field: "amount"},
		{name: "infinite amount", mutate: func(c *DonationCandidate) { c.Amount = floatPtr(math.Inf(1)) }, field: "amount"},
		{name: "nan amount", mutate: func(c *DonationCandidate) { c.Amount = floatPtr(math.NaN()) }, field: "amount"},
		{name: "empty donor", mutate: func(c *DonationCandidate) { c.DonorName = strPtr("") }, field: "donor_name"},
		{name: "blank donor", mutate: func(c *DonationCandidate) { c.DonorName = strPtr("   ") }, field: "donor_name"},
		{name: "missing donor", mutate: func(c *DonationCandidate) { c.DonorName = nil }, field: "donor_name"},
		{name: "empty currency", mutate: func(c *DonationCandidate) { c.Currency = strPtr("") }, field: "currency"},
		{name: "missing currency", mutate: func(c *DonationCandidate) { c.Currency = nil }, field: "currency"},
	}

	v := NewValidator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validCandidate()
			tc.mutate(&c)

			_, err := v.Validate(c)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
}

func TestValidatorReportsEveryField(t *testing.T) {
	_, err := NewValidator().Validate(DonationCandidate{
		DonorName: strPtr(""),
		Amount:    floatPtr(0),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasField("donor_name"))
	assert.True(t, verr.HasField("amount"))
	assert.True(t, verr.HasField("currency"))
	assert.Equal(t, "must be greater than 0", verr.Fields[1].Message)
}

func TestValidDonationWithIDCopiesMessage(t *testing.T) {
	msg := "hello"
	d := ValidDonation{DonorName: "A", Amount: 1, Currency: "USD", Message: &msg}.WithID(7)
	msg = "changed"

	assert.Equal(t, int64(7), d.ID)
	require.NotNil(t, d.Message)
	assert.Equal(t, "hello", *d.Message)
}
