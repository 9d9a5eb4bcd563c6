package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/internal/parquet"
	"github.com/cfudash/fundboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteHistogram outputs a histogram, dispatching based on the output format configured.
func WriteHistogram(hist *schema.Histogram, cfg *contract.Config, duration time.Duration) error {
	if hist == nil {
		return writeEmptyHistogram(cfg)
	}
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, hist)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistogramCSV(w, hist, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteHistogram(w, parquet.ConvertHistogram(hist))
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHTMLPage(w, []schema.BarSeries{histogramBars(hist)})
		}, "Wrote HTML chart")
	case schema.SVGOut, schema.PNGOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStaticChart(w, cfg.Output, histogramBars(hist))
		}, "Wrote chart")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeHistogramTable(w, hist, cfg); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Binned %d values of %s into %d bins (min %s, max %s, width %s)\n",
				hist.Total, hist.Column, hist.BinCount, fmtFloat(hist.Min), fmtFloat(hist.Max), fmtFloat(hist.Width)); err != nil {
				return err
			}
			return writeSummary(w, cfg, duration)
		}, "Wrote table")
	}
}

// writeHistogramTable prints one row per bin with a bar scaled to the largest bin.
func writeHistogramTable(w io.Writer, hist *schema.Histogram, cfg *contract.Config) error {
	maxCount := 0
	for _, c := range hist.Counts {
		maxCount = max(maxCount, c)
	}
	barWidth := getMaxLabelWidth(cfg, 45)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Bin", "Count", "Distribution"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(hist.Counts))
	for i, c := range hist.Counts {
		data = append(data, []string{hist.Labels[i], strconv.Itoa(c), contract.BarColor.Sprint(histogramBar(c, maxCount, barWidth))})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// histogramBar draws count as a run of blocks; any non-zero count gets at least one.
func histogramBar(count, maxCount, width int) string {
	if count <= 0 || maxCount <= 0 {
		return ""
	}
	n := max(1, count*width/maxCount)
	return strings.Repeat("█", n)
}

// writeHistogramCSV writes one row per bin with its numeric bounds.
func writeHistogramCSV(w io.Writer, hist *schema.Histogram, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"bin", "label", "lo", "hi", "count"}, func(cw *csv.Writer) error {
		for _, b := range parquet.ConvertHistogram(hist) {
			rec := []string{
				strconv.Itoa(int(b.BinIndex)),
				b.Label,
				fmtFloat(b.Lo),
				fmtFloat(b.Hi),
				strconv.Itoa(int(b.Count)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeEmptyHistogram reports a histogram with nothing to bin. Machine-readable
// modes stay parseable; the rest print the no-data message.
func writeEmptyHistogram(cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, nil)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistogramCSV(w, nil, createFormatter(cfg.Precision))
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteHistogram(w, nil)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, contract.NoDataMessage)
			return err
		}, "Wrote table")
	}
}
