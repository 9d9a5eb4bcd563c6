package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/internal/parquet"
	"github.com/cfudash/fundboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDatasetList prints the dataset registry using the configured output format.
func WriteDatasetList(list []schema.DatasetInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, list)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetListCSV(w, list)
		}, "Wrote CSV")
	case schema.TextOut, "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetListTable(w, list)
		}, "Wrote table")
	default:
		return unsupportedOutput("the dataset list", cfg.Output, schema.TextOut, schema.CSVOut, schema.JSONOut)
	}
}

// WriteTable prints one dataset as rows and columns using the configured output format.
func WriteTable(name string, ds schema.Dataset, cfg *contract.Config, duration time.Duration) error {
	if ds == nil {
		ds = schema.Dataset{}
	}
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, ds)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetCSV(w, ds, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteCells(w, parquet.ConvertDataset(name, ds))
		}, "Wrote Parquet")
	case schema.TextOut, "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeDatasetTable(w, ds, cfg); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Showing %d rows of %s\n", len(ds), name); err != nil {
				return err
			}
			return writeSummary(w, cfg, duration)
		}, "Wrote table")
	default:
		return unsupportedOutput("a table", cfg.Output, schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut)
	}
}

func writeDatasetListTable(w io.Writer, list []schema.DatasetInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Path", "Description"})

	data := make([][]string, 0, len(list))
	for _, info := range list {
		data = append(data, []string{string(info.Name), info.Path, info.Description})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d datasets available\n", len(list))
	return err
}

func writeDatasetListCSV(w io.Writer, list []schema.DatasetInfo) error {
	return writeCSVWithHeader(w, []string{"name", "path", "description"}, func(cw *csv.Writer) error {
		for _, info := range list {
			if err := cw.Write([]string{string(info.Name), info.Path, info.Description}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDatasetTable renders records with one column per key, in first-seen order.
func writeDatasetTable(w io.Writer, ds schema.Dataset, cfg *contract.Config) error {
	if len(ds) == 0 {
		_, err := fmt.Fprintln(w, contract.NoDataMessage)
		return err
	}

	cols := ds.Columns()
	cellWidth := getMaxLabelWidth(cfg, 10*len(cols))

	table := tablewriter.NewWriter(w)
	table.Header(cols)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(ds))
	for _, rec := range ds {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = contract.TruncateLabel(contract.FormatCell(rec[col], cfg.Precision), cellWidth)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeDatasetCSV writes every record with the union of columns as header.
func writeDatasetCSV(w io.Writer, ds schema.Dataset, precision int) error {
	cols := ds.Columns()
	return writeCSVWithHeader(w, cols, func(cw *csv.Writer) error {
		for _, rec := range ds {
			row := make([]string, len(cols))
			for i, col := range cols {
				row[i] = contract.FormatCell(rec[col], precision)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
