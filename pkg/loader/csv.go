package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/raykavin/launchdash/pkg/core"
	"github.com/samber/lo"
)

// Logical dataset columns
const (
	ColumnFlight  = "flight"
	ColumnSite    = "site"
	ColumnPayload = "payload"
	ColumnOutcome = "outcome"
	ColumnBooster = "booster"
)

var (
	requiredColumns = []string{ColumnSite, ColumnPayload, ColumnOutcome, ColumnBooster}

	// columnAliases maps normalized header names to logical columns. The
	// published launch datasets disagree on casing and spacing, so every
	// known spelling resolves to one schema here. A lower rank wins when
	// a file carries more than one spelling of the same column.
	columnAliases = map[string]columnAlias{
		"flightnumber":           {ColumnFlight, 0},
		"launchsite":             {ColumnSite, 0},
		"site":                   {ColumnSite, 1},
		"payloadmasskg":          {ColumnPayload, 0},
		"payloadmass":            {ColumnPayload, 1},
		"class":                  {ColumnOutcome, 0},
		"outcome":                {ColumnOutcome, 1},
		"boosterversioncategory": {ColumnBooster, 0},
		"boosterversion":         {ColumnBooster, 1},
	}
)

type columnAlias struct {
	column string
	rank   int
}

// FromCSV loads the dataset from a CSV file with a header row
func FromCSV(file string) (*core.Dataset, error) {
	csvFile, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer csvFile.Close()

	ds, err := ReadCSV(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file, err)
	}

	return ds, nil
}

// ReadCSV parses launch records from r. The first row must be a header.
func ReadCSV(r io.Reader) (*core.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	csvLines, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(csvLines) == 0 {
		return nil, core.ErrEmptyFile
	}

	headerMap, err := parseHeaders(csvLines[0])
	if err != nil {
		return nil, err
	}

	records := make([]core.LaunchRecord, 0, len(csvLines)-1)
	for i, line := range csvLines[1:] {
		record, err := parseRecordFromLine(line, headerMap)
		if err != nil {
			// +2 accounts for the header and 1-based row numbers
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	return core.NewDataset(records)
}

// normalizeHeader lowercases a header and drops everything but letters and digits
func normalizeHeader(header string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, header)
}

// parseHeaders resolves the header row to logical column indexes
func parseHeaders(headers []string) (map[string]int, error) {
	headerMap := make(map[string]int)
	ranks := make(map[string]int)

	for index, header := range headers {
		alias, ok := columnAliases[normalizeHeader(header)]
		if !ok {
			continue
		}

		if rank, exists := ranks[alias.column]; exists && rank <= alias.rank {
			continue
		}
		headerMap[alias.column] = index
		ranks[alias.column] = alias.rank
	}

	missing := lo.Filter(requiredColumns, func(column string, _ int) bool {
		_, ok := headerMap[column]
		return !ok
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrMissingColumn, strings.Join(missing, ", "))
	}

	return headerMap, nil
}

// parseRecordFromLine builds a launch record from one CSV line
func parseRecordFromLine(line []string, headerMap map[string]int) (core.LaunchRecord, error) {
	var (
		record core.LaunchRecord
		err    error
	)

	for column, index := range headerMap {
		if index >= len(line) {
			return core.LaunchRecord{}, fmt.Errorf("%w: %s", core.ErrMissingColumn, column)
		}
	}

	cell := func(column string) string {
		return strings.TrimSpace(line[headerMap[column]])
	}

	record.Site = cell(ColumnSite)
	record.BoosterVersion = cell(ColumnBooster)

	record.PayloadMass, err = strconv.ParseFloat(cell(ColumnPayload), 64)
	if err != nil || math.IsNaN(record.PayloadMass) || math.IsInf(record.PayloadMass, 0) {
		return core.LaunchRecord{}, fmt.Errorf("%w: %q", core.ErrInvalidPayload, cell(ColumnPayload))
	}

	if record.Outcome, err = core.ParseOutcome(cell(ColumnOutcome)); err != nil {
		return core.LaunchRecord{}, err
	}

	if _, ok := headerMap[ColumnFlight]; ok && cell(ColumnFlight) != "" {
		// Exports write integer columns as 1.0, so parse as float and
		// require a whole number
		flight, err := strconv.ParseFloat(cell(ColumnFlight), 64)
		if err != nil || flight != math.Trunc(flight) || math.IsInf(flight, 0) {
			return core.LaunchRecord{}, fmt.Errorf("%w: %q", core.ErrInvalidFlight, cell(ColumnFlight))
		}
		record.FlightNumber = int(flight)
	}

	return record, nil
}
