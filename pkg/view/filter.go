// Package view holds the recompute functions behind the dashboard charts.
// Every function here is pure: it reads the dataset, never mutates it and
// returns the same figure for the same selection.
package view

import (
	"github.com/raykavin/launchdash/pkg/core"
	"github.com/samber/lo"
)

// FilterSite restricts records to one launch site. The AllSites sentinel
// returns every record; an unknown site returns none.
func FilterSite(records []core.LaunchRecord, site string) []core.LaunchRecord {
	match := core.WithSite(site)
	return lo.Filter(records, func(record core.LaunchRecord, _ int) bool {
		return match(record)
	})
}

// FilterPayload keeps records whose payload mass lies in the inclusive range
func FilterPayload(records []core.LaunchRecord, payload core.PayloadRange) []core.LaunchRecord {
	return lo.Filter(records, func(record core.LaunchRecord, _ int) bool {
		return payload.Contains(record.PayloadMass)
	})
}

// CountOutcomes returns the number of successful and failed launches
func CountOutcomes(records []core.LaunchRecord) (success, failure int) {
	success = lo.CountBy(records, func(record core.LaunchRecord) bool {
		return record.IsSuccess()
	})
	return success, len(records) - success
}

func scopeName(site string) string {
	if site == core.AllSites {
		return "All Sites"
	}
	return site
}
