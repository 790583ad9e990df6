// Package export renders transform results as delimited text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/capops/quotanorm/internal/pipeline"
	"github.com/capops/quotanorm/internal/schema"
)

// Headers returns the output column names. When includeRDQuota is set the
// originating tracker identifier is prepended as its own column.
func Headers(includeRDQuota bool) []string {
	final := schema.FinalHeaders()
	if !includeRDQuota {
		return final
	}
	headers := make([]string, 0, len(final)+1)
	headers = append(headers, schema.RawColRDQuota)
	headers = append(headers, final...)
	return headers
}

func record(r pipeline.Row, includeRDQuota bool) []string {
	fields := []string{
		r.SubscriptionID,
		r.RequestType,
		r.VMType,
		r.Region,
		r.Zone,
		r.Cores,
		r.Status,
	}
	if includeRDQuota {
		return append([]string{r.OriginalID}, fields...)
	}
	return fields
}

// Records flattens a result into header + data records, ready for a
// csv.Writer.
func Records(res *pipeline.Result, includeRDQuota bool) [][]string {
	out := make([][]string, 0, len(res.Rows)+1)
	out = append(out, Headers(includeRDQuota))
	for _, r := range res.Rows {
		out = append(out, record(r, includeRDQuota))
	}
	return out
}

func write(w io.Writer, res *pipeline.Result, comma rune, includeRDQuota bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.WriteAll(Records(res, includeRDQuota)); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

// WriteCSV writes the result as comma separated values.
func WriteCSV(w io.Writer, res *pipeline.Result, includeRDQuota bool) error {
	return write(w, res, ',', includeRDQuota)
}

// WriteTSV writes the result as tab separated values.
func WriteTSV(w io.Writer, res *pipeline.Result, includeRDQuota bool) error {
	return write(w, res, '\t', includeRDQuota)
}

// WriteGrouped writes one titled section per request-type group, in first
// encounter order. Each section repeats the header row so the blocks can be
// pasted independently.
func WriteGrouped(w io.Writer, res *pipeline.Result, comma rune, includeRDQuota bool) error {
	for i, key := range res.GroupOrder {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "## %s\n", key); err != nil {
			return err
		}

		cw := csv.NewWriter(w)
		cw.Comma = comma
		if err := cw.Write(Headers(includeRDQuota)); err != nil {
			return fmt.Errorf("writing group header: %w", err)
		}
		for _, r := range res.Groups[key] {
			if err := cw.Write(record(r, includeRDQuota)); err != nil {
				return fmt.Errorf("writing group record: %w", err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing group %q: %w", key, err)
		}
	}
	return nil
}
