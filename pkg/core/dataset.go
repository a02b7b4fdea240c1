package core

import (
	"fmt"
	"math"

	"github.com/StudioSol/set"
)

// Dataset is the ordered, read-only table of launch records.
// It is safe for concurrent use since nothing mutates it after NewDataset.
type Dataset struct {
	records []LaunchRecord
	sites   []string
	bounds  PayloadRange
}

// NewDataset builds a dataset from records in their file order and
// computes the payload bounds once.
func NewDataset(records []LaunchRecord) (*Dataset, error) {
	ds := &Dataset{
		records: make([]LaunchRecord, len(records)),
	}
	copy(ds.records, records)

	sites := set.NewLinkedHashSetString()
	for i, record := range ds.records {
		if math.IsNaN(record.PayloadMass) || math.IsInf(record.PayloadMass, 0) {
			return nil, fmt.Errorf("%w: row %d has %v kg", ErrInvalidPayload, i+1, record.PayloadMass)
		}
		if record.PayloadMass < 0 {
			return nil, fmt.Errorf("%w: row %d has %v kg", ErrNegativePayload, i+1, record.PayloadMass)
		}

		if i == 0 || record.PayloadMass < ds.bounds.Min {
			ds.bounds.Min = record.PayloadMass
		}
		if i == 0 || record.PayloadMass > ds.bounds.Max {
			ds.bounds.Max = record.PayloadMass
		}

		sites.Add(record.Site)
	}

	ds.sites = make([]string, 0, sites.Length())
	for site := range sites.Iter() {
		ds.sites = append(ds.sites, site)
	}

	return ds, nil
}

// Records returns a copy of every record in dataset order
func (d *Dataset) Records() []LaunchRecord {
	records := make([]LaunchRecord, len(d.records))
	copy(records, d.records)
	return records
}

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// Sites returns the distinct launch sites in order of first appearance
func (d *Dataset) Sites() []string {
	sites := make([]string, len(d.sites))
	copy(sites, d.sites)
	return sites
}

// HasSite reports whether any record was launched from site
func (d *Dataset) HasSite(site string) bool {
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// PayloadBounds returns the dataset-wide minimum and maximum payload mass.
// An empty dataset reports the zero range.
func (d *Dataset) PayloadBounds() PayloadRange { return d.bounds }

// Select returns, in dataset order, the records accepted by every filter
func (d *Dataset) Select(filters ...RecordFilter) []LaunchRecord {
	selected := make([]LaunchRecord, 0)
	for _, record := range d.records {
		if matchAll(record, filters) {
			selected = append(selected, record)
		}
	}
	return selected
}

func matchAll(record LaunchRecord, filters []RecordFilter) bool {
	for _, filter := range filters {
		if !filter(record) {
			return false
		}
	}
	return true
}
