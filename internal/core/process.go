package core

import (
	"fmt"
	"path/filepath"

	"github.com/jakebark/nftcsv/internal/config"
	"github.com/jakebark/nftcsv/internal/inputs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Processor struct {
	fs        afero.Fs
	userInput inputs.UserInput
	log       logrus.FieldLogger
}

func NewProcessor(fs afero.Fs, userInput inputs.UserInput, log logrus.FieldLogger) *Processor {
	return &Processor{fs: fs, userInput: userInput, log: log}
}

// Run converts one batch: load, unify the header, then write per-item and aggregated outputs.
func (p *Processor) Run() error {
	layout, err := p.layout()
	if err != nil {
		return err
	}

	if err := p.fs.MkdirAll(p.userInput.OutputDir, 0755); err != nil {
		return err
	}

	items, err := p.load()
	if err != nil {
		return err
	}
	layout.Traits = UnifyTraits(items)

	if err := p.writePerItem(layout, items); err != nil {
		return err
	}
	return p.writeAggregated(layout, items)
}

// layout builds everything of the header that does not depend on the batch.
func (p *Processor) layout() (Layout, error) {
	layout := Layout{
		Base:           SelectBaseColumns(p.userInput.OnlyTraits, p.userInput.Fields),
		FilenameColumn: p.userInput.FilenameCol,
	}
	if layout.FilenameColumn == "" {
		return layout, nil
	}
	tmpl, err := ParseTemplate(p.userInput.FilenameTemplate)
	if err != nil {
		return Layout{}, err
	}
	layout.Filename = tmpl
	return layout, nil
}

func (p *Processor) load() ([]Item, error) {
	if p.userInput.MetadataMode() {
		if p.userInput.IDFromSet {
			p.log.Warn("--id-from only applies to folder mode; using ids from the metadata")
		}
		return p.extractMetadata(p.userInput.Metadata)
	}

	files, err := FindJSONFiles(p.fs, p.userInput.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w in %s (or use --metadata metadata.json): %v", ErrNoDocuments, p.userInput.InputDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (or use --metadata metadata.json)", ErrNoDocuments, p.userInput.InputDir)
	}
	return p.extractFolder(files), nil
}

func (p *Processor) writePerItem(layout Layout, items []Item) error {
	if p.userInput.MetadataMode() && !p.userInput.EmitPerFile {
		p.log.Info("Per-file CSVs skipped (use --emit-per-file to write them in metadata mode)")
		return nil
	}
	results, err := p.writePerItemFiles(layout, items)
	if err != nil {
		return err
	}
	p.log.Infof("Wrote %d per-file CSV(s) into: %s", len(results), p.userInput.OutputDir)
	return nil
}

func (p *Processor) aggregatePath() string {
	if p.userInput.Aggregate != "" {
		return p.userInput.Aggregate
	}
	if p.userInput.MetadataMode() {
		return config.DefaultAggregateName
	}
	return ""
}

func (p *Processor) writeAggregated(layout Layout, items []Item) error {
	csvPath := p.aggregatePath()
	if csvPath == "" && p.userInput.XLSX == "" {
		p.log.Info("No aggregated CSV requested (use --aggregate PATH, or use --metadata to auto-write metadata.csv)")
		return nil
	}

	if p.userInput.Sort {
		items = sortByTokenID(items)
	}
	header := layout.Header()
	rows := layout.Rows(items)

	if csvPath != "" {
		result, err := p.writeAggregate(filepath.Clean(csvPath), header, rows)
		if err != nil {
			return err
		}
		p.log.Infof("Aggregated CSV written: %s (%d rows)", result.Filename, result.Rows)
	}
	if p.userInput.XLSX != "" {
		result, err := p.writeWorkbook(filepath.Clean(p.userInput.XLSX), header, rows)
		if err != nil {
			return err
		}
		p.log.Infof("Aggregated workbook written: %s (%d rows)", result.Filename, result.Rows)
	}
	return nil
}
