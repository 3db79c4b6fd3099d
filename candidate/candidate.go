// Package candidate loads candidate S-box tables from JSON, YAML and
// whitespace-separated text files.
package candidate

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	sboxeval "github.com/themarkrogers/ai-s-box"
)

// Format is a candidate file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTSV  Format = "tsv"
)

// ErrUnsupportedFormat is returned for file extensions with no loader.
var ErrUnsupportedFormat = errors.New("unsupported candidate format")

// File is a candidate table plus the parameters it claims. Absent numeric
// fields are nil so that explicit zeros can be told apart.
type File struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	InputBits  *int     `json:"input_bits,omitempty" yaml:"input_bits,omitempty"`
	OutputBits *int     `json:"output_bits,omitempty" yaml:"output_bits,omitempty"`
	Symbols    *int     `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Indexing   string   `json:"indexing,omitempty" yaml:"indexing,omitempty"`
	Parsers    []string `json:"parsers,omitempty" yaml:"parsers,omitempty"`
	Rows       Rows     `json:"table" yaml:"table"`
}

// Rows is a table whose rows may be written either as lists of tokens or as a
// single string of tokens separated by whitespace or commas.
type Rows sboxeval.Table

// UnmarshalJSON accepts each row as an array of strings or as one string.
func (r *Rows) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("table must be an array of rows: %w", err)
	}
	rows := make(Rows, 0, len(raw))
	for i, msg := range raw {
		var tokens []string
		if err := json.Unmarshal(msg, &tokens); err == nil {
			rows = append(rows, tokens)
			continue
		}
		var line string
		if err := json.Unmarshal(msg, &line); err != nil {
			return fmt.Errorf("row %d: want an array of strings or a string", i)
		}
		rows = append(rows, splitRow(line))
	}
	*r = rows
	return nil
}

// UnmarshalYAML keeps every scalar as written, so "0010" stays "0010" rather
// than being resolved to an integer.
func (r *Rows) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: table must be a sequence of rows", value.Line)
	}
	rows := make(Rows, 0, len(value.Content))
	for _, rowNode := range value.Content {
		switch rowNode.Kind {
		case yaml.SequenceNode:
			row := make([]string, 0, len(rowNode.Content))
			for _, cell := range rowNode.Content {
				if cell.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: table cells must be scalars", cell.Line)
				}
				row = append(row, cell.Value)
			}
			rows = append(rows, row)
		case yaml.ScalarNode:
			rows = append(rows, splitRow(rowNode.Value))
		default:
			return fmt.Errorf("line %d: row must be a sequence or a string", rowNode.Line)
		}
	}
	*r = rows
	return nil
}

// Table returns the rows as an evaluation table.
func (f *File) Table() sboxeval.Table {
	return sboxeval.Table(f.Rows)
}

// Params overlays the file's claimed parameters on base.
func (f *File) Params(base sboxeval.Params) (sboxeval.Params, error) {
	p := base
	if f.Name != "" {
		p.Name = f.Name
	}
	if f.InputBits != nil {
		p.InputBits = *f.InputBits
	}
	if f.OutputBits != nil {
		p.OutputBits = *f.OutputBits
	}
	if f.Symbols != nil {
		p.Symbols = *f.Symbols
	}
	if f.Indexing != "" {
		indexing, err := sboxeval.ParseIndexing(f.Indexing)
		if err != nil {
			return base, err
		}
		p.Indexing = indexing
	}
	return p, nil
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".tsv", ".txt", ".csv":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses the candidate file at path.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("invalid JSON candidate: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("invalid YAML candidate: %w", err)
		}
	case FormatTSV:
		table, err := ParseTSV(data)
		if err != nil {
			return nil, err
		}
		f.Rows = Rows(table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &f, nil
}

// ParseTSV reads one row per line, tokens separated by tabs, spaces or commas.
// Blank lines and lines starting with '#' are skipped. Rows are not checked for
// equal length here; the normalizer reports ragged tables.
func ParseTSV(data []byte) (sboxeval.Table, error) {
	var table sboxeval.Table
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		table = append(table, splitRow(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return table, nil
}

func splitRow(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
}
