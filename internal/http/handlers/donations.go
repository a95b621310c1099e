package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"donations/internal/domain"
	"donations/internal/middleware"
)

// DonationsList returns every stored donation, oldest first.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Donations.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}
	if items == nil {
		items = []domain.Donation{}
	}
	a.json(w, http.StatusOK, items)
}

// DonationsCreate validates the payload and stores it. Rejected payloads never reach the repository.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	limit := a.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	var fields map[string]json.RawMessage
	if err := decodeJSON(http.MaxBytesReader(w, r.Body, limit), &fields); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		a.rejectDonation(w, err)
		return
	}

	candidate, typeErrs := candidateFromFields(fields)
	valid, err := a.Validator.Validate(candidate)
	if err != nil || len(typeErrs) > 0 {
		a.rejectDonation(w, mergeFieldErrors(typeErrs, err))
		return
	}

	donation, err := a.Donations.Create(r.Context(), valid)
	if err != nil {
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create donation")
		return
	}

	a.Metrics.observeCreated(donation)
	a.Logger.Info().
		Int64("donation_id", donation.ID).
		Str("currency", donation.Currency).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Msg("donation created")
	a.json(w, http.StatusOK, donation)
}

func (a *App) rejectDonation(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		verr = &domain.ValidationError{Fields: []domain.FieldError{{Field: "body", Message: "invalid request body"}}}
	}
	a.Metrics.observeRejected(verr)
	a.json(w, http.StatusUnprocessableEntity, errorResponse{
		Error:   "validation_error",
		Message: verr.Error(),
		Fields:  verr.Fields,
	})
}

// candidateFields lists the intake keys in report order. Keys match exactly;
// anything else in the object is ignored.
var candidateFields = []string{"donor_name", "amount", "currency", "message"}

// candidateFromFields fills a candidate from the exact intake keys. Values of
// the wrong JSON type leave the field unset and are reported instead.
func candidateFromFields(fields map[string]json.RawMessage) (domain.DonationCandidate, []domain.FieldError) {
	var c domain.DonationCandidate
	targets := map[string]any{
		"donor_name": &c.DonorName,
		"amount":     &c.Amount,
		"currency":   &c.Currency,
		"message":    &c.Message,
	}
	var typeErrs []domain.FieldError
	for _, name := range candidateFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, targets[name]); err != nil {
			typeErrs = append(typeErrs, domain.FieldError{Field: name, Message: typeMessage(err)})
		}
	}
	return c, typeErrs
}

// mergeFieldErrors combines decode-time type errors with validator output in
// candidate field order. A field with a type error is reported once.
func mergeFieldErrors(typeErrs []domain.FieldError, validateErr error) error {
	byField := make(map[string]domain.FieldError, len(candidateFields))
	for _, fe := range typeErrs {
		byField[fe.Field] = fe
	}
	var verr *domain.ValidationError
	if errors.As(validateErr, &verr) {
		for _, fe := range verr.Fields {
			if _, seen := byField[fe.Field]; !seen {
				byField[fe.Field] = fe
			}
		}
	} else if validateErr != nil {
		return validateErr
	}

	merged := &domain.ValidationError{}
	for _, name := range candidateFields {
		if fe, ok := byField[name]; ok {
			merged.Fields = append(merged.Fields, fe)
		}
	}
	return merged
}

// decodeJSON decodes exactly one JSON value, turning decoder failures into
// validation errors on the body.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return decodeError(errors.New("unexpected data after JSON body"))
	}
	return nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: "body", Message: "must be a JSON object"}}}
	}
	if errors.Is(err, io.EOF) {
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: "body", Message: "field required"}}}
	}
	return &domain.ValidationError{Fields: []domain.FieldError{{Field: "body", Message: "invalid JSON"}}}
}

func typeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return "invalid value"
	}
	switch typeErr.Type.Kind() {
	case reflect.Float64:
		return "must be a number"
	case reflect.String:
		return "must be a string"
	}
	return "invalid type"
}
