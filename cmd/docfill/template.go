package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docfill/internal/adapters/driven/docx"
	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/extractors"
	"github.com/custodia-labs/docfill/internal/fill"
	"github.com/custodia-labs/docfill/internal/placeholder"
)

var (
	fillSets       []string
	fillValuesFile string
	fillOut        string
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "List the placeholders found in a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

var fillCmd = &cobra.Command{
	Use:   "fill [file]",
	Short: "Fill a template and write a new .docx",
	Long: `Fills the placeholders of a template and writes the result as .docx.

Values are applied in the order given. --values reads a JSON object;
--set pairs are applied after it.

Example:
  docfill fill safe.docx --set "Company Name=Acme Inc." --set "Purchase Amount=250000"`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringArrayVar(&fillSets, "set", nil, "Field value as name=value (repeatable)")
	fillCmd.Flags().StringVar(&fillValuesFile, "values", "", "JSON file with field values")
	fillCmd.Flags().StringVarP(&fillOut, "out", "o", "", "Output path (default: <name>-filled.docx)")
}

func runScan(cmd *cobra.Command, args []string) error {
	text, err := readTemplate(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	for _, name := range placeholder.Scan(text) {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx := contextOf(cmd)

	values, err := collectValues(fillValuesFile, fillSets)
	if err != nil {
		return err
	}

	text, err := readTemplate(ctx, args[0])
	if err != nil {
		return err
	}

	data, err := docx.NewBuilder().Build(ctx, fill.Fill(text, values))
	if err != nil {
		return err
	}

	out := fillOut
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		out = base + "-filled.docx"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// readTemplate extracts the text of a .docx or plain text template.
func readTemplate(ctx context.Context, path string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	registry := extractors.DefaultRegistry(docx.NewExtractor())
	extractor := registry.Get(extractors.DetectType(path, ""))
	if extractor == nil {
		extractor = docx.NewExtractor()
	}

	text, err := extractor.Extract(ctx, f)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, nil
}

// collectValues merges the JSON values file with --set pairs, in order.
func collectValues(path string, sets []string) (domain.Values, error) {
	var values domain.Values
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	for _, pair := range sets {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q (want name=value)", pair)
		}
		values.Set(name, value)
	}
	return values, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
