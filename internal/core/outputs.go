package core

import (
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/jakebark/nftcsv/internal/config"
	"github.com/xuri/excelize/v2"
)

// writePerItemFiles writes one single-row CSV per item into the output directory.
func (p *Processor) writePerItemFiles(layout Layout, items []Item) ([]WriteResult, error) {
	header := layout.Header()
	var results []WriteResult
	for _, it := range items {
		filename := filepath.Join(p.userInput.OutputDir, it.Stem+config.CSVExt)
		if err := p.writeCSV(filename, header, [][]string{layout.Row(it)}); err != nil {
			return results, err
		}
		results = append(results, WriteResult{Filename: filename, Rows: 1})
	}
	return results, nil
}

// writeAggregate writes every row into one CSV, creating its parent directory.
func (p *Processor) writeAggregate(filename string, header []string, rows [][]string) (WriteResult, error) {
	if err := p.fs.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return WriteResult{}, err
	}
	if err := p.writeCSV(filename, header, rows); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Filename: filename, Rows: len(rows)}, nil
}

func (p *Processor) writeCSV(filename string, header []string, rows [][]string) error {
	f, err := p.fs.Create(filename)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if !p.userInput.NoHeader {
		if err := w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return f.Close()
}

// writeWorkbook puts the aggregated rows on the first sheet of an xlsx workbook.
func (p *Processor) writeWorkbook(filename string, header []string, rows [][]string) (WriteResult, error) {
	book := excelize.NewFile()
	defer book.Close()
	sheet := book.GetSheetName(0)

	all := rows
	if !p.userInput.NoHeader {
		all = append([][]string{header}, rows...)
	}
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return WriteResult{}, err
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return WriteResult{}, fmt.Errorf("write %s row %d: %w", filename, i+1, err)
		}
	}

	if err := p.fs.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return WriteResult{}, err
	}
	out, err := p.fs.Create(filename)
	if err != nil {
		return WriteResult{}, err
	}
	if err := book.Write(out); err != nil {
		out.Close()
		return WriteResult{}, fmt.Errorf("write %s: %w", filename, err)
	}
	if err := out.Close(); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Filename: filename, Rows: len(rows)}, nil
}
