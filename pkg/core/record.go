package core

import (
	"strconv"
)

// LaunchRecord is one row of the launch dataset
type LaunchRecord struct {
	FlightNumber   int     `json:"flight_number"`
	Site           string  `json:"site"`
	PayloadMass    float64 `json:"payload_mass"`
	Outcome        Outcome `json:"outcome"`
	BoosterVersion string  `json:"booster_version"`
}

// IsSuccess reports whether the launch succeeded
func (r LaunchRecord) IsSuccess() bool { return r.Outcome == Success }

// ToSlice converts a record to a string slice for CSV export
func (r LaunchRecord) ToSlice() []string {
	return []string{
		strconv.Itoa(r.FlightNumber),
		r.Site,
		strconv.FormatFloat(r.PayloadMass, 'f', -1, 64),
		strconv.Itoa(r.Outcome.Value()),
		r.BoosterVersion,
	}
}

// RecordFilter is a predicate over launch records
type RecordFilter func(record LaunchRecord) bool

// WithSite keeps records launched from the given site. The AllSites
// sentinel keeps every record.
func WithSite(site string) RecordFilter {
	return func(record LaunchRecord) bool {
		return site == AllSites || record.Site == site
	}
}

// WithPayloadIn keeps records whose payload mass lies in the inclusive range
func WithPayloadIn(payload PayloadRange) RecordFilter {
	return func(record LaunchRecord) bool {
		return payload.Contains(record.PayloadMass)
	}
}

// WithOutcome keeps records with the given outcome
func WithOutcome(outcome Outcome) RecordFilter {
	return func(record LaunchRecord) bool {
		return record.Outcome == outcome
	}
}
