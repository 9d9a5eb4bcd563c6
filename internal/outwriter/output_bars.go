package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/internal/parquet"
	"github.com/cfudash/fundboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBars outputs a bar series, dispatching based on the output format configured.
func WriteBars(bars schema.BarSeries, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, bars)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBarsCSV(w, bars, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteBars(w, parquet.ConvertBars(bars))
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHTMLPage(w, []schema.BarSeries{bars})
		}, "Wrote HTML chart")
	case schema.SVGOut, schema.PNGOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStaticChart(w, cfg.Output, bars)
		}, "Wrote chart")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeBarsTable(w, bars, cfg, fmtFloat); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Showing %d bars of %s\n", bars.Len(), bars.Title); err != nil {
				return err
			}
			return writeSummary(w, cfg, duration)
		}, "Wrote table")
	}
}

// writeBarsTable generates the human-readable ranking table.
// Series with colors get a bucket column painted in the bucket color.
func writeBarsTable(w io.Writer, bars schema.BarSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	if bars.Len() == 0 {
		_, err := fmt.Fprintln(w, contract.NoDataMessage)
		return err
	}

	colored := len(bars.Colors) == bars.Len()
	headers := []string{"Rank", "Label", bars.SeriesName}
	reserved := 30
	if colored {
		headers = append(headers, "Bucket")
		reserved += 12
	}
	labelWidth := getMaxLabelWidth(cfg, reserved)

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, bars.Len())
	for i, label := range bars.Labels {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(label, labelWidth),
			fmtFloat(bars.Values[i]),
		}
		if colored {
			bucket := bucketForHex(bars.Colors[i])
			row = append(row, contract.GetColorLabel(bucket, bucket.Name))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeBarsCSV writes one row per bar in series order.
func writeBarsCSV(w io.Writer, bars schema.BarSeries, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"rank", "label", "value", "color"}, func(cw *csv.Writer) error {
		for i, label := range bars.Labels {
			color := ""
			if i < len(bars.Colors) {
				color = bars.Colors[i]
			}
			if err := cw.Write([]string{strconv.Itoa(i + 1), label, fmtFloat(bars.Values[i]), color}); err != nil {
				return err
			}
		}
		return nil
	})
}

// bucketForHex maps a bar color back to its named bucket.
func bucketForHex(hex string) schema.ColorBucket {
	for _, b := range []schema.ColorBucket{schema.GreenBucket, schema.YellowBucket, schema.OrangeBucket, schema.RedBucket} {
		if b.Hex == hex {
			return b
		}
	}
	return schema.GrayBucket
}
