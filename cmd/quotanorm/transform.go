package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/capops/quotanorm/internal/core"
	"github.com/capops/quotanorm/internal/export"
	"github.com/capops/quotanorm/internal/pipeline"
)

var (
	transformFormat  string
	transformRDQuota bool
	transformGroups  bool
	transformOutput  string
)

var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Normalize an export file or stdin",
	Long: `Transform reads a quota request export from the given file, or from
stdin when no file is named, and writes the normalized table to stdout or to
the --output file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVarP(&transformFormat, "format", "f", "csv", "output format: csv, tsv, or json")
	transformCmd.Flags().BoolVar(&transformRDQuota, "rdquota", false, "prepend the tracker identifier column")
	transformCmd.Flags().BoolVar(&transformGroups, "groups", false, "emit one titled section per request type")
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(transformCmd)
}

func readTransformInput(args []string) (text string, err error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	text, err := readTransformInput(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	result, err := pipeline.Transform(text)
	if err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		return err
	}

	out := cmd.OutOrStdout()
	if transformOutput != "" {
		f, err := os.Create(transformOutput)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		defer f.Close()
		out = f
	}

	switch transformFormat {
	case "csv":
		if transformGroups {
			err = export.WriteGrouped(out, result, ',', transformRDQuota)
		} else {
			err = export.WriteCSV(out, result, transformRDQuota)
		}
	case "tsv":
		if transformGroups {
			err = export.WriteGrouped(out, result, '\t', transformRDQuota)
		} else {
			err = export.WriteTSV(out, result, transformRDQuota)
		}
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(result)
	default:
		err = fmt.Errorf("unsupported format %q (want csv, tsv, or json)", transformFormat)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	fmt.Fprintf(os.Stderr, "%d rows in %d groups (%s, %s delimited)\n",
		len(result.Rows), len(result.GroupOrder), result.Shape, result.Delimiter)
	return nil
}
