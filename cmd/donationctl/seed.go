package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"donations/internal/domain"
)

type seedFile struct {
	Donations []domain.DonationCandidate `yaml:"donations"`
}

type seedResult struct {
	Created  int
	Rejected int
}

// loadSeedFile reads a document of the form:
//
//	donations:
//	  - donor_name: Alice
//	    amount: 25
//	    currency: EUR
//	    message: Bon courage
func loadSeedFile(r io.Reader) ([]domain.DonationCandidate, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc seedFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("seed file is empty")
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return doc.Donations, nil
}

// seedDonations validates every candidate and stores the valid ones in file
// order. Rejections are reported on out and do not stop the run; a storage
// failure does.
func seedDonations(ctx context.Context, store domain.DonationRepository, v *domain.Validator, candidates []domain.DonationCandidate, out io.Writer) (seedResult, error) {
	var res seedResult
	for i, c := range candidates {
		valid, err := v.Validate(c)
		if err != nil {
			res.Rejected++
			fmt.Fprintf(out, "entry %d rejected: %v\n", i+1, err)
			continue
		}
		created, err := store.Create(ctx, valid)
		if err != nil {
			return res, fmt.Errorf("entry %d: %w", i+1, err)
		}
		res.Created++
		fmt.Fprintf(out, "entry %d created id=%d\n", i+1, created.ID)
	}
	return res, nil
}
