package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultDatasetURL is the freeCodeCamp copy of the global temperature dataset.
const DefaultDatasetURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// ErrMalformedDataset reports a document that decodes as JSON but does not
// describe a usable dataset.
var ErrMalformedDataset = errors.New("malformed dataset")

// AnomalyRecord is one month's deviation from the baseline temperature.
type AnomalyRecord struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"` // 1–12
	Variance float64 `json:"variance"`
}

// Dataset is the decoded remote document. It is read-only once loaded.
type Dataset struct {
	Baseline float64
	Records  []AnomalyRecord
}

// wireDataset mirrors the JSON served by the remote source.
type wireDataset struct {
	BaseTemperature *float64        `json:"baseTemperature"`
	MonthlyVariance []AnomalyRecord `json:"monthlyVariance"`
}

// ParseDataset decodes the remote JSON document into a Dataset.
// An empty record list is not an error here; the scale builder rejects it.
func ParseDataset(data []byte) (Dataset, error) {
	var wire wireDataset
	if err := json.Unmarshal(data, &wire); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	if wire.BaseTemperature == nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w: missing baseTemperature", ErrMalformedDataset)
	}
	for i, rec := range wire.MonthlyVariance {
		if rec.Month < 1 || rec.Month > 12 {
			return Dataset{}, fmt.Errorf("parse dataset: %w: record %d has month %d", ErrMalformedDataset, i, rec.Month)
		}
	}
	return Dataset{
		Baseline: *wire.BaseTemperature,
		Records:  wire.MonthlyVariance,
	}, nil
}

// YearSpan returns the first and last year present in the records.
// ok is false when there are no records.
func (d Dataset) YearSpan() (first, last int, ok bool) {
	if len(d.Records) == 0 {
		return 0, 0, false
	}
	first, last = d.Records[0].Year, d.Records[0].Year
	for _, rec := range d.Records[1:] {
		first = min(first, rec.Year)
		last = max(last, rec.Year)
	}
	return first, last, true
}
