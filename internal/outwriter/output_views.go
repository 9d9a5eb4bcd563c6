package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/internal/parquet"
	"github.com/cfudash/fundboard/schema"
)

// WriteViews outputs a set of dashboard views, dispatching based on the output format configured.
// Views in the error or empty state are reported in place; they never fail the whole write.
func WriteViews(views []schema.View, cfg *contract.Config, duration time.Duration) error {
	if views == nil {
		views = []schema.View{}
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, views)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeViewsCSV(w, views, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			var cells []parquet.Cell
			for _, v := range views {
				cells = append(cells, parquet.ConvertDataset(v.Name, viewDataset(v))...)
			}
			return parquet.WriteCells(w, cells)
		}, "Wrote Parquet")
	case schema.HTMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHTMLPage(w, chartSeries(views))
		}, "Wrote HTML dashboard")
	case schema.SVGOut, schema.PNGOut:
		series := chartSeries(views)
		if len(series) != 1 {
			return fmt.Errorf("%s output holds a single chart but %d views have chart data; use html for several charts", cfg.Output, len(series))
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStaticChart(w, cfg.Output, series[0])
		}, "Wrote chart")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeViewsText(w, views, cfg); err != nil {
				return err
			}
			return writeSummary(w, cfg, duration)
		}, "Wrote dashboard")
	}
}

// writeViewsText prints each view under a heading in display order.
func writeViewsText(w io.Writer, views []schema.View, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)
	for _, v := range views {
		if _, err := fmt.Fprintf(w, "\n📊 %s\n", v.Name); err != nil {
			return err
		}
		var err error
		switch {
		case v.Status == schema.ViewError:
			_, err = fmt.Fprintf(w, "⚠️  %s\n", v.Error)
		case v.Status == schema.ViewLoading:
			_, err = fmt.Fprintln(w, "Loading...")
		case v.Status == schema.ViewEmpty:
			_, err = fmt.Fprintln(w, contract.NoDataMessage)
		case v.Hist != nil:
			err = writeHistogramTable(w, v.Hist, cfg)
		case v.Bars != nil:
			err = writeBarsTable(w, *v.Bars, cfg, fmtFloat)
		default:
			err = writeDatasetTable(w, v.Table, cfg)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writeViewsCSV writes every view in long format: one row per cell.
func writeViewsCSV(w io.Writer, views []schema.View, precision int) error {
	header := []string{"view", "status", "row", "column", "value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range views {
			if v.Status != schema.ViewReady {
				if err := cw.Write([]string{v.Name, string(v.Status), "", "", v.Error}); err != nil {
					return err
				}
				continue
			}
			ds := viewDataset(v)
			cols := ds.Columns()
			for i, rec := range ds {
				for _, col := range cols {
					val, ok := rec[col]
					if !ok {
						continue
					}
					row := []string{v.Name, string(v.Status), strconv.Itoa(i + 1), col, contract.FormatCell(val, precision)}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// viewDataset flattens any ready view into records so tabular writers can share one path.
func viewDataset(v schema.View) schema.Dataset {
	switch {
	case v.Status != schema.ViewReady:
		return nil
	case v.Hist != nil:
		ds := make(schema.Dataset, len(v.Hist.Counts))
		for i, c := range v.Hist.Counts {
			ds[i] = schema.Record{"bin": v.Hist.Labels[i], "count": float64(c)}
		}
		return ds
	case v.Bars != nil:
		ds := make(schema.Dataset, v.Bars.Len())
		for i, label := range v.Bars.Labels {
			rec := schema.Record{"label": label, "value": v.Bars.Values[i]}
			if i < len(v.Bars.Colors) {
				rec["color"] = v.Bars.Colors[i]
			}
			ds[i] = rec
		}
		return ds
	default:
		return v.Table
	}
}

// chartSeries collects the chartable views; tables and failed views are noted on stderr.
func chartSeries(views []schema.View) []schema.BarSeries {
	var series []schema.BarSeries
	for _, v := range views {
		switch {
		case v.Status == schema.ViewError:
			_, _ = fmt.Fprintf(os.Stderr, "Warn skipping %s: %s\n", v.Name, v.Error)
		case v.Hist != nil:
			s := histogramBars(v.Hist)
			s.Title = v.Name
			series = append(series, s)
		case v.Bars != nil:
			s := *v.Bars
			s.Title = v.Name
			series = append(series, s)
		case v.Status == schema.ViewReady:
			_, _ = fmt.Fprintf(os.Stderr, "Warn skipping %s: tables have no chart form\n", v.Name)
		}
	}
	return series
}
