// Package export writes the session's staff records to flat files.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kingrea/staffdesk/internal/staff"
)

// Format names an export file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet that holds records in XLSX exports.
const SheetName = "Staff"

// TaskSeparator joins productive tasks inside a single cell.
const TaskSeparator = "; "

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("export: no records to export")

// Header is the fixed column header, in record field order.
var Header = []string{
	"Staff ID",
	"Name",
	"Role",
	"Research Papers",
	"Grants/Funding (Lakh)",
	"Extra Activities",
	"Training Hours Attended",
	"Productive Tasks",
	"Non-Productive Task",
	"Productive Score",
}

// ParseFormat maps a config value to a Format.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("export: unknown format %q", value)
	}
}

// Row flattens a record into Header order.
func Row(r staff.Record) []string {
	return []string{
		strconv.Itoa(r.StaffID),
		r.Name,
		string(r.Role),
		strconv.Itoa(r.ResearchPapers),
		strconv.Itoa(r.GrantsLakh),
		r.ExtraActivities,
		strconv.Itoa(r.TrainingHours),
		r.TaskLabels(TaskSeparator),
		r.NonProductiveTask,
		strconv.FormatFloat(r.ProductiveScore, 'f', 1, 64),
	}
}

// WriteCSV encodes records as UTF-8 CSV with Header as the first line.
func WriteCSV(w io.Writer, records []staff.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for i, record := range records {
		if err := cw.Write(Row(record)); err != nil {
			return fmt.Errorf("export: write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}

// WriteXLSX encodes records as a single-sheet workbook. Numeric columns are
// stored as numbers so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, records []staff.Record) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: name sheet: %w", err)
	}
	header := make([]interface{}, len(Header))
	for i, title := range Header {
		header[i] = title
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("export: write xlsx header: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: xlsx cell for row %d: %w", i+1, err)
		}
		row := []interface{}{
			r.StaffID,
			r.Name,
			string(r.Role),
			r.ResearchPapers,
			r.GrantsLakh,
			r.ExtraActivities,
			r.TrainingHours,
			r.TaskLabels(TaskSeparator),
			r.NonProductiveTask,
			r.ProductiveScore,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("export: write xlsx row %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write xlsx: %w", err)
	}
	return nil
}

// Request describes one export run.
type Request struct {
	Dir      string
	BaseName string
	Formats  []Format
	Records  []staff.Record
}

// Result lists the files an export produced, in Request.Formats order.
type Result struct {
	Paths []string
	Count int
}

// Run writes every requested format into Dir. Formats are written
// concurrently and each file is moved into place only once complete; the
// first failure cancels formats that have not started.
func Run(ctx context.Context, req Request) (Result, error) {
	if len(req.Records) == 0 {
		return Result{}, ErrNoRecords
	}
	req.Formats = uniqueFormats(req.Formats)
	if len(req.Formats) == 0 {
		req.Formats = []Format{FormatCSV}
	}
	base := strings.TrimSpace(req.BaseName)
	if base == "" {
		base = "staff_data"
	}
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("export: ensure dir: %w", err)
	}
	paths := make([]string, len(req.Formats))
	for i, format := range req.Formats {
		paths[i] = filepath.Join(req.Dir, base+"."+string(format))
	}
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range req.Formats {
		path := paths[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeFile(path, format, req.Records)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Paths: paths, Count: len(req.Records)}, nil
}

// uniqueFormats drops repeats so no two writers target the same path.
func uniqueFormats(formats []Format) []Format {
	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func writeFile(path string, format Format, records []staff.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("export: create %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())
	switch format {
	case FormatCSV:
		err = WriteCSV(tmp, records)
	case FormatXLSX:
		err = WriteXLSX(tmp, records)
	default:
		err = fmt.Errorf("export: unknown format %q", format)
	}
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("export: close %s: %w", filepath.Base(path), cerr)
	}
	if err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: move %s into place: %w", filepath.Base(path), err)
	}
	return nil
}
