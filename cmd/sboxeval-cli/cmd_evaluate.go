package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/candidate"
	"github.com/themarkrogers/ai-s-box/core"
	"github.com/themarkrogers/ai-s-box/evaluate"
	"github.com/themarkrogers/ai-s-box/metrics/normalize"
	"github.com/themarkrogers/ai-s-box/metrics/walsh"
	"github.com/themarkrogers/ai-s-box/sboxes"
)

// OutputFormat is the report encoding.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// evaluateOptions holds the evaluate command's flags.
type evaluateOptions struct {
	InputFile   string
	Builtin     string
	Preset      string
	InputBits   int
	OutputBits  int
	Symbols     int
	Indexing    string
	Algorithm   string
	Parsers     []string
	BinaryFirst bool
	Format      string
	OutputFile  string
	Timing      bool
}

// ReportExport is the JSON document written by the evaluate command.
type ReportExport struct {
	Name      string          `json:"name,omitempty"`
	Algorithm string          `json:"algorithm"`
	Report    sboxeval.Report `json:"report"`
	ElapsedMS float64         `json:"elapsed_ms,omitempty"`
}

var errNoCandidate = errors.New("one of --input or --builtin is required")

func newEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a candidate S-box table",
		Example: `  sboxeval-cli evaluate --builtin aes
  sboxeval-cli evaluate --input candidate.yaml --n 8 --m 8 --indexing nibble
  sboxeval-cli evaluate --input des.tsv --preset des --binary-first --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.InputFile, "input", "i", "", "Candidate file (.json, .yaml, .yml, .tsv, .txt, .csv)")
	f.StringVarP(&opts.Builtin, "builtin", "b", "", "Evaluate a builtin reference S-box (see 'sboxes')")
	f.StringVarP(&opts.Preset, "preset", "p", "", "Parameter preset (see 'presets')")
	f.IntVar(&opts.InputBits, "n", 0, "Claimed input width in bits")
	f.IntVar(&opts.OutputBits, "m", 0, "Claimed output width in bits")
	f.IntVar(&opts.Symbols, "symbols", 0, "Claimed symbol alphabet size (informational)")
	f.StringVar(&opts.Indexing, "indexing", "", "Cell indexing: row-major or nibble")
	f.StringVar(&opts.Algorithm, "algorithm", "fast", "Walsh algorithm: fast or naive")
	f.StringSliceVar(&opts.Parsers, "parsers", nil, "Ordered token parsers: hex, bin, dec")
	f.BoolVar(&opts.BinaryFirst, "binary-first", false, "Try binary before hex (DES style tables)")
	f.StringVarP(&opts.Format, "format", "f", string(FormatJSON), "Output format: json or text")
	f.StringVarP(&opts.OutputFile, "output", "o", "", "Write the report to a file instead of stdout")
	f.BoolVar(&opts.Timing, "timing", false, "Include evaluation time")
	cmd.MarkFlagsMutuallyExclusive("input", "builtin")
	cmd.MarkFlagsMutuallyExclusive("parsers", "binary-first")

	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	format := OutputFormat(strings.ToLower(opts.Format))
	if format != FormatJSON && format != FormatText {
		return fmt.Errorf("unknown format: %s", opts.Format)
	}
	alg, err := walsh.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return err
	}

	var (
		table       sboxeval.Table
		file        *candidate.File
		builtin     *sboxes.Builtin
		fileParsers []string
	)
	switch {
	case opts.InputFile != "":
		file, err = candidate.Load(opts.InputFile)
		if err != nil {
			return err
		}
		table = file.Table()
		fileParsers = file.Parsers
	case opts.Builtin != "":
		b, err := sboxes.Lookup(opts.Builtin)
		if err != nil {
			return err
		}
		builtin = &b
		table = b.Table
	default:
		return errNoCandidate
	}

	params, err := resolveParams(cmd, opts, builtin, file)
	if err != nil {
		return err
	}
	parsers, err := resolveParsers(opts, builtin, fileParsers)
	if err != nil {
		return err
	}

	slog.Debug("evaluating candidate",
		"name", params.Name,
		"n", params.InputBits,
		"m", params.OutputBits,
		"indexing", params.Indexing,
		"rows", len(table))

	start := time.Now()
	report, err := evaluate.Evaluate(cmd.Context(), table, params,
		evaluate.WithAlgorithm(alg),
		evaluate.WithParsers(parsers...),
		evaluate.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	elapsed := time.Since(start)

	export := ReportExport{
		Name:      params.Name,
		Algorithm: alg.String(),
		Report:    report,
	}
	if opts.Timing {
		export.ElapsedMS = float64(elapsed.Microseconds()) / 1000
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(export, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		data = append(data, '\n')
	case FormatText:
		data, err = renderText(export)
		if err != nil {
			return err
		}
	}
	return writeOutput(cmd, data, opts.OutputFile)
}

// resolveParams layers parameters: builtin defaults, then the preset, then the
// candidate file, then flags that were set explicitly.
func resolveParams(cmd *cobra.Command, opts *evaluateOptions, builtin *sboxes.Builtin, file *candidate.File) (sboxeval.Params, error) {
	var params sboxeval.Params
	if builtin != nil {
		params = builtin.Params
	}
	if opts.Preset != "" {
		preset, err := core.GetParams(opts.Preset)
		if err != nil {
			return params, err
		}
		if builtin != nil {
			preset.Name = builtin.Name
		}
		params = preset
	}
	if file != nil {
		var err error
		params, err = file.Params(params)
		if err != nil {
			return params, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		params.InputBits = opts.InputBits
	}
	if flags.Changed("m") {
		params.OutputBits = opts.OutputBits
	}
	if flags.Changed("symbols") {
		params.Symbols = opts.Symbols
	}
	if flags.Changed("indexing") {
		indexing, err := sboxeval.ParseIndexing(opts.Indexing)
		if err != nil {
			return params, err
		}
		params.Indexing = indexing
	}

	if err := core.ValidateParams(params); err != nil {
		return params, err
	}
	return params, nil
}

// resolveParsers picks the token parser order: --parsers, --binary-first, the
// candidate file, the builtin's own preference, then the default.
func resolveParsers(opts *evaluateOptions, builtin *sboxes.Builtin, fileParsers []string) ([]normalize.Parser, error) {
	switch {
	case len(opts.Parsers) > 0:
		return normalize.ParsersByName(opts.Parsers...)
	case opts.BinaryFirst:
		return normalize.BinaryFirstParsers(), nil
	case len(fileParsers) > 0:
		return normalize.ParsersByName(fileParsers...)
	case builtin != nil && builtin.BinaryFirst:
		return normalize.BinaryFirstParsers(), nil
	default:
		return normalize.DefaultParsers(), nil
	}
}

func renderText(export ReportExport) ([]byte, error) {
	r := export.Report
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if export.Name != "" {
		fmt.Fprintf(w, "S-box:\t%s\n", export.Name)
	}
	fmt.Fprintf(w, "Widths:\tn=%d m=%d (%s)\n", r.InputBits, r.OutputBits, r.Indexing)
	fmt.Fprintf(w, "Domain:\t%d of %d (%s)\n", r.DomainSize, r.ExpectedDomainSize, consistency(r.DomainConsistent))
	fmt.Fprintf(w, "Range:\tmax output %d (%s)\n", r.MaxOutputValue, consistency(r.RangeConsistent))
	fmt.Fprintf(w, "Symbols:\t%d distinct\n", r.DistinctSymbols)
	fmt.Fprintf(w, "Permutation:\t%t\n", r.IsPermutation)
	fmt.Fprintf(w, "Differential uniformity:\t%s\n", optionalInt(r.MaxDDTEntry))
	if r.MaxLinearCorrelation != nil {
		fmt.Fprintf(w, "Max linear correlation:\t%.6f\n", *r.MaxLinearCorrelation)
	} else {
		fmt.Fprintln(w, "Max linear correlation:\tabsent")
	}
	fmt.Fprintf(w, "Max Walsh magnitude:\t%s\n", optionalInt(r.MaxWalshMagnitude))
	fmt.Fprintf(w, "Nonlinearity:\t%s\n", optionalInt(r.Nonlinearity))
	fmt.Fprintf(w, "Bent:\t%t\n", r.IsBent)
	fmt.Fprintf(w, "Walsh algorithm:\t%s\n", export.Algorithm)
	fmt.Fprintf(w, "Fingerprint:\t%s\n", r.Fingerprint)
	if export.ElapsedMS > 0 {
		fmt.Fprintf(w, "Elapsed:\t%.3f ms\n", export.ElapsedMS)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func consistency(ok bool) string {
	if ok {
		return "consistent"
	}
	return "inconsistent"
}

func optionalInt(v *int) string {
	if v == nil {
		return "absent"
	}
	return fmt.Sprintf("%d", *v)
}
