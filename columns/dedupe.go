package columns

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// DefaultColumn is the column whose repeats are dropped.
	DefaultColumn = "animal_counts"

	DefaultInput  = "hourly_averages.csv"
	DefaultOutput = "hourly_averages_cleaned.csv"
)

type (
	Options struct {
		Column string // column name to deduplicate; DefaultColumn when empty
	}
	Result struct {
		Column       string // column that was deduplicated
		InputColumns int    // columns in the input header
		KeptColumns  int    // columns in the output header
		Rows         int    // data rows written, header excluded
	}
)

// Dropped returns how many header columns were removed.
func (r Result) Dropped() int {
	return r.InputColumns - r.KeptColumns
}

// Message is the confirmation line printed after a successful run.
func (r Result) Message(outputPath string) string {
	return fmt.Sprintf("Duplicate '%s' columns removed, except for the first one. Output saved to '%s'.", r.Column, outputPath)
}

func (o Options) column() string {
	if o.Column == "" {
		return DefaultColumn
	}
	return o.Column
}

// KeepIndices returns the header positions to keep: every column, except
// any column named column after its first occurrence.
func KeepIndices(header []string, column string) []int {
	keep := make([]int, 0, len(header))
	seen := false
	for i, name := range header {
		if name == column {
			if seen {
				continue
			}
			seen = true
		}
		keep = append(keep, i)
	}
	return keep
}

// Project returns the values of row at the keep positions, in order.
func Project(row []string, keep []int) ([]string, error) {
	out := make([]string, len(keep))
	for j, i := range keep {
		if i >= len(row) {
			return nil, fmt.Errorf("%w: need field %d, row has %d", ErrShortRow, i+1, len(row))
		}
		out[j] = row[i]
	}
	return out, nil
}

// deduper holds a reader whose header has been read and checked.
type deduper struct {
	reader *csv.Reader
	header []string
	keep   []int
	res    Result
	// offset just past the last record read
	offset int64
	// physical line the last record ended on
	endLine int
}

func readHeader(r io.Reader, opts Options) (*deduper, error) {
	d := &deduper{reader: csv.NewReader(r), res: Result{Column: opts.column()}}
	d.reader.LazyQuotes = true
	d.reader.FieldsPerRecord = -1

	header, err := d.reader.Read()
	if errors.Is(err, io.EOF) {
		return d, ErrMissingHeader
	}
	if err != nil {
		return d, fmt.Errorf("reading header: %w", err)
	}
	d.header = header
	d.keep = KeepIndices(header, d.res.Column)
	d.res.InputColumns = len(header)
	d.res.KeptColumns = len(d.keep)
	d.advance(header)
	return d, nil
}

// advance records where rec ended. A quoted field may span lines, and the
// reader has already folded its line breaks to \n.
func (d *deduper) advance(rec []string) {
	last := len(rec) - 1
	line, _ := d.reader.FieldPos(last)
	d.endLine = line + strings.Count(rec[last], "\n")
	d.offset = d.reader.InputOffset()
}

// blankBefore reports the first blank line the reader skipped before the
// record just read, or 0 when it follows the previous record directly.
func (d *deduper) blankBefore() int {
	line, _ := d.reader.FieldPos(0)
	if line > d.endLine+1 {
		return d.endLine + 1
	}
	return 0
}

func (d *deduper) writeTo(w io.Writer) (Result, error) {
	res := d.res
	writer := csv.NewWriter(w)
	// header projection cannot fail, keep only holds header positions
	newHeader, _ := Project(d.header, d.keep)
	if err := writer.Write(newHeader); err != nil {
		return res, fmt.Errorf("writing header: %w", err)
	}

	line := 1
	for {
		row, err := d.reader.Read()
		if errors.Is(err, io.EOF) {
			// trailing blank lines are consumed without producing a record
			if d.reader.InputOffset() > d.offset {
				writer.Flush()
				return res, fmt.Errorf("line %d: %w: blank line", d.endLine+1, ErrShortRow)
			}
			break
		}
		line++
		if err != nil {
			writer.Flush()
			return res, fmt.Errorf("reading row %d: %w", line, err)
		}
		if blank := d.blankBefore(); blank > 0 {
			writer.Flush()
			return res, fmt.Errorf("line %d: %w: blank line", blank, ErrShortRow)
		}
		d.advance(row)
		out, err := Project(row, d.keep)
		if err != nil {
			writer.Flush()
			return res, fmt.Errorf("row %d: %w", line, err)
		}
		if err := writer.Write(out); err != nil {
			return res, fmt.Errorf("writing row %d: %w", line, err)
		}
		res.Rows++
	}

	writer.Flush()
	return res, writer.Error()
}

// Dedupe reads CSV from r and writes it to w with repeated copies of the
// configured column removed. Rows are written as they are read, so on error
// w holds every row up to the failing one. A blank line in the data is a
// row with no fields and fails with ErrShortRow.
func Dedupe(r io.Reader, w io.Writer, opts Options) (Result, error) {
	d, err := readHeader(r, opts)
	if err != nil {
		return d.res, err
	}
	return d.writeTo(w)
}

// DedupeFile runs Dedupe from inputPath into outputPath. The output is
// created or truncated only once the input header has been read, so a
// previous output survives an empty or unreadable input. The input file is
// never modified.
func DedupeFile(inputPath, outputPath string, opts Options) (Result, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return Result{Column: opts.column()}, err
	}
	defer in.Close()

	d, err := readHeader(in, opts)
	if err != nil {
		return d.res, fmt.Errorf("%s: %w", inputPath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return d.res, err
	}
	defer out.Close()

	res, err := d.writeTo(out)
	if err != nil {
		return res, fmt.Errorf("%s: %w", inputPath, err)
	}
	return res, out.Close()
}
