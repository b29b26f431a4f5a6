package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/source"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/render"
	"github.com/couchcryptid/temperature-heatmap/internal/scale"
	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Fetch the dataset and check it can be drawn completely",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
}

func runValidate(ctx context.Context, stdout, stderr io.Writer, opts *options) error {
	logger := observability.NewLoggerTo(stderr, opts.logLevel, "text")
	ds, err := source.NewClient(opts.url, opts.timeout, logger).Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return err
	}

	fmt.Fprintln(stdout, "=== Temperature Dataset Validation ===")
	fmt.Fprintln(stdout)

	phases := []*phase{
		validateRecords(ds),
		validateCoverage(ds),
		validateScales(ds),
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(stdout, "  %-24s %s\n", p.name, status)
	}

	fmt.Fprintln(stdout)
	if first, last, ok := ds.YearSpan(); ok {
		fmt.Fprintf(stdout, "Records: %d, years %d-%d, base temperature %s\n",
			len(ds.Records), first, last, domain.FormatCelsius(ds.Baseline))
	} else {
		fmt.Fprintln(stdout, "Records: 0")
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(stdout, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(stdout, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(stdout, "\nAll validations passed.")
		return nil
	}
	fmt.Fprintln(stdout, "\nValidation FAILED.")
	return errValidationFailed
}

type yearMonth struct{ year, month int }

// validateRecords checks the dataset is non-empty and holds at most one
// record per (year, month).
func validateRecords(ds domain.Dataset) *phase {
	p := &phase{name: "Records"}
	if len(ds.Records) == 0 {
		p.errorf("dataset has no records")
		return p
	}
	seen := make(map[yearMonth]int, len(ds.Records))
	for i, r := range ds.Records {
		key := yearMonth{r.Year, r.Month}
		if prev, ok := seen[key]; ok {
			p.errorf("record %d duplicates record %d (%d %s)", i, prev, r.Year, domain.MonthName(r.Month))
			continue
		}
		seen[key] = i
	}
	return p
}

// validateCoverage checks every year between the first and last is present
// with all twelve months. The final year may be partial.
func validateCoverage(ds domain.Dataset) *phase {
	p := &phase{name: "Coverage"}
	first, last, ok := ds.YearSpan()
	if !ok {
		return p
	}
	months := make(map[int]map[int]bool)
	for _, r := range ds.Records {
		if months[r.Year] == nil {
			months[r.Year] = make(map[int]bool, 12)
		}
		months[r.Year][r.Month] = true
	}
	for y := first; y <= last; y++ {
		got, ok := months[y]
		if !ok {
			p.errorf("year %d has no records", y)
			continue
		}
		if y == last {
			continue
		}
		for m := 1; m <= 12; m++ {
			if !got[m] {
				p.errorf("year %d is missing %s", y, domain.MonthName(m))
			}
		}
	}
	return p
}

// validateScales builds the scale set at the default layout and checks every
// record lands on a cell.
func validateScales(ds domain.Dataset) *phase {
	p := &phase{name: "Scales"}
	set, err := scale.Build(ds, render.DefaultLayout().Ranges(), scale.DefaultScheme)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	for i, r := range ds.Records {
		if _, ok := set.YearToX(r.Year); !ok {
			p.errorf("record %d: year %d has no band", i, r.Year)
		}
		if _, ok := set.MonthToY(r.Month); !ok {
			p.errorf("record %d: month %d has no band", i, r.Month)
		}
	}
	if lo, hi := set.Color.Domain(); lo == hi {
		p.errorf("variance domain is a single value (%s); every cell has the same colour", domain.FormatFixed(lo))
	}
	return p
}
