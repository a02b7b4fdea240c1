package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/metric"
	"github.com/samber/lo"
)

// SiteSummary collects launch statistics of one site
type SiteSummary struct {
	Site        string  `json:"site"`
	Launches    int     `json:"launches"`
	Success     int     `json:"success"`
	Failure     int     `json:"failure"`
	MeanPayload float64 `json:"mean_payload"`
}

// SuccessPercentage returns the share of successful launches in percent
func (s SiteSummary) SuccessPercentage() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Launches) * 100
}

// Summary is the per-site breakdown of a dataset
type Summary []SiteSummary

// SiteSummaries summarizes every site in order of first appearance
func SiteSummaries(ds *core.Dataset) Summary {
	records := ds.Records()

	return lo.Map(ds.Sites(), func(site string, _ int) SiteSummary {
		siteRecords := FilterSite(records, site)
		success, failure := CountOutcomes(siteRecords)

		return SiteSummary{
			Site:     site,
			Launches: len(siteRecords),
			Success:  success,
			Failure:  failure,
			MeanPayload: metric.Mean(lo.Map(siteRecords, func(r core.LaunchRecord, _ int) float64 {
				return r.PayloadMass
			})),
		}
	})
}

// String formats the summary as a text table
func (s Summary) String() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"Site", "Launches", "Success", "Failure", "% Success", "Mean payload (kg)"})

	var launches, success, failure int
	for _, site := range s {
		table.Append([]string{
			site.Site,
			strconv.Itoa(site.Launches),
			strconv.Itoa(site.Success),
			strconv.Itoa(site.Failure),
			fmt.Sprintf("%.1f", site.SuccessPercentage()),
			fmt.Sprintf("%.1f", site.MeanPayload),
		})
		launches += site.Launches
		success += site.Success
		failure += site.Failure
	}

	total := SiteSummary{Launches: launches, Success: success}
	table.SetFooter([]string{
		"Total",
		strconv.Itoa(launches),
		strconv.Itoa(success),
		strconv.Itoa(failure),
		fmt.Sprintf("%.1f", total.SuccessPercentage()),
		"",
	})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})
	table.Render()

	return tableString.String()
}
