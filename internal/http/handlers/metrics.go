package handlers

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"donations/internal/domain"
)

// DonationMetrics counts accepted and rejected donations. A nil *DonationMetrics is a no-op.
type DonationMetrics struct {
	created  *prometheus.CounterVec
	amount   *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

func NewDonationMetrics(reg prometheus.Registerer) *DonationMetrics {
	m := &DonationMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "donations_created_total",
			Help: "Donations accepted and stored",
		}, []string{"currency"}),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "donations_amount_total",
			Help: "Sum of accepted donation amounts",
		}, []string{"currency"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "donation_validation_failures_total",
			Help: "Rejected intake fields",
		}, []string{"field"}),
	}
	reg.MustRegister(m.created, m.amount, m.rejected)
	return m
}

func (m *DonationMetrics) observeCreated(d domain.Donation) {
	if m == nil {
		return
	}
	currency := currencyLabel(d.Currency)
	m.created.WithLabelValues(currency).Inc()
	m.amount.WithLabelValues(currency).Add(d.Amount)
}

func (m *DonationMetrics) observeRejected(verr *domain.ValidationError) {
	if m == nil || verr == nil {
		return
	}
	for _, f := range verr.Fields {
		m.rejected.WithLabelValues(fieldLabel(f.Field)).Inc()
	}
}

// currencyLabel bounds label cardinality: anything but a three-letter code is "other".
func currencyLabel(currency string) string {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if len(c) != 3 {
		return "other"
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return "other"
		}
	}
	return c
}

func fieldLabel(field string) string {
	switch field {
	case "donor_name", "amount", "currency", "message", "body":
		return field
	default:
		return "other"
	}
}
