package domain

// Donation represents a stored supporter contribution. Records are immutable
// once the repository has assigned an ID.
type Donation struct {
	ID        int64   `json:"id"`
	DonorName string  `json:"donor_name"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Message   *string `json:"message"`
}

// DonationCandidate is the intake payload before validation. Pointer fields
// keep a missing value distinct from an empty one.
type DonationCandidate struct {
	DonorName *string  `json:"donor_name" yaml:"donor_name" validate:"required,notblank"`
	Amount    *float64 `json:"amount" yaml:"amount" validate:"required,gt=0,finite"`
	Currency  *string  `json:"currency" yaml:"currency" validate:"required,notblank"`
	Message   *string  `json:"message,omitempty" yaml:"message,omitempty"`
}

// ValidDonation is a candidate that passed validation. It carries no ID.
type ValidDonation struct {
	DonorName string
	Amount    float64
	Currency  string
	Message   *string
}

// WithID builds the stored record for an accepted donation.
func (v ValidDonation) WithID(id int64) Donation {
	return Donation{
		ID:        id,
		DonorName: v.DonorName,
		Amount:    v.Amount,
		Currency:  v.Currency,
		Message:   cloneString(v.Message),
	}
}

// Clone returns a copy that shares no memory with d.
func (d Donation) Clone() Donation {
	d.Message = cloneString(d.Message)
	return d
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
