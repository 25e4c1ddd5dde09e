package inputs

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jakebark/nftcsv/internal/config"
	"github.com/spf13/pflag"
)

// IDMode selects where folder-mode items take their token_id from.
type IDMode string

const (
	IDAuto     IDMode = "auto"
	IDFilename IDMode = "filename"
	IDJSON     IDMode = "json"
)

var ErrInvalidIDMode = errors.New("--id-from must be one of auto, filename, json")

type UserInput struct {
	InputDir  string
	OutputDir string

	Metadata    string
	EmitPerFile bool

	Sort        bool
	IDFrom      IDMode
	IDFromSet   bool
	ImagePrefix string
	Aggregate   string
	XLSX        string

	NoHeader   bool
	OnlyTraits bool
	Fields     []string

	FilenameCol      string
	FilenameTemplate string
}

// MetadataMode reports whether a single aggregated JSON document is the source.
func (u UserInput) MetadataMode() bool {
	return u.Metadata != ""
}

// ParseFlags returns parsed CLI flags, falling back to env-backed defaults
func ParseFlags(args []string) (UserInput, error) {
	cfg := config.Load()

	u := UserInput{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
	}
	var idFrom string

	fs := pflag.NewFlagSet("nftcsv", pflag.ContinueOnError)
	fs.StringVar(&u.Metadata, "metadata", "", "read a single aggregated metadata.json instead of the json folder")
	fs.BoolVar(&u.EmitPerFile, "emit-per-file", false, "with --metadata, also emit per-item CSVs into the csv folder")
	fs.BoolVar(&u.Sort, "sort", cfg.Sort, "sort the aggregated CSV by token_id")
	fs.Var(&negatedBool{target: &u.Sort}, "no-sort", "keep the aggregated CSV in input order")
	fs.Lookup("no-sort").NoOptDefVal = "true"
	fs.StringVar(&idFrom, "id-from", string(IDAuto), "folder mode only: auto, filename or json")
	fs.StringVar(&u.ImagePrefix, "image-prefix", cfg.ImagePrefix, "gateway prefix for ipfs:// or relative image paths")
	fs.StringVarP(&u.Aggregate, "aggregate", "a", "", "write one combined CSV to this path")
	fs.StringVar(&u.XLSX, "xlsx", "", "also write the combined rows to this .xlsx workbook")
	fs.BoolVar(&u.NoHeader, "no-header", false, "do not write the header row")
	fs.BoolVar(&u.OnlyTraits, "only-traits", false, "write only trait columns")
	fs.StringSliceVar(&u.Fields, "fields", nil, "subset of base columns, e.g. token_id,name,image or, as the last flag, token_id name image")
	fs.StringVar(&u.FilenameCol, "filename-col", "", "add a column mapping each row to its uploaded file")
	fs.StringVar(&u.FilenameTemplate, "filename-template", cfg.FilenameTemplate,
		"template for --filename-col; vars: {token_id} {stem} {image} {image_name} {image_ext}")

	if err := fs.Parse(args); err != nil {
		return UserInput{}, err
	}
	if fs.NArg() > 0 {
		extra, ok := trailingFields(args, fs.Args())
		if !ok {
			return UserInput{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
		}
		u.Fields = append(u.Fields, extra...)
	}

	mode, err := parseIDMode(idFrom)
	if err != nil {
		return UserInput{}, err
	}
	u.IDFrom = mode
	u.IDFromSet = fs.Changed("id-from")

	return u, nil
}

func parseIDMode(value string) (IDMode, error) {
	switch IDMode(value) {
	case IDAuto, "":
		return IDAuto, nil
	case IDFilename, IDJSON:
		return IDMode(value), nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidIDMode, value)
}

// negatedBool backs --no-sort; it writes the same variable as --sort so the last flag given wins.
type negatedBool struct {
	target *bool
}

func (b *negatedBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*b.target = !v
	return nil
}

func (b *negatedBool) String() string {
	if b.target == nil {
		return "false"
	}
	return strconv.FormatBool(!*b.target)
}

func (b *negatedBool) Type() string {
	return "bool"
}

// trailingFields accepts space separated values after a final --fields, e.g. "--fields token_id name image".
func trailingFields(args, positional []string) ([]string, bool) {
	last := -1
	for i, a := range args {
		if a == "--" {
			break
		}
		if strings.HasPrefix(a, "-") {
			last = i
		}
	}
	if last < 0 {
		return nil, false
	}
	var tail []string
	switch {
	case args[last] == "--fields" && last+2 <= len(args):
		tail = args[last+2:]
	case strings.HasPrefix(args[last], "--fields="):
		tail = args[last+1:]
	default:
		return nil, false
	}
	if !slices.Equal(tail, positional) {
		return nil, false
	}
	return tail, true
}
