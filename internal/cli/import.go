package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrailerPack/internal/importer"
	"github.com/piwi3910/TrailerPack/internal/model"
	"github.com/piwi3910/TrailerPack/internal/project"
)

var importOutPath string

var importCmd = &cobra.Command{
	Use:   "import <cargo.csv|cargo.xlsx>",
	Short: "Import a cargo list from CSV or Excel into a plan file",
	Long: `import reads a cargo list and writes a plan file ready for 'pack'.
Columns are matched by header name (label, length, width, height, quantity,
lock, flip, shape); headerless files are read positionally. CSV delimiters
(comma, semicolon, tab, pipe) are auto-detected.

If the output plan already exists the cargo is appended to it, otherwise a
new plan around the default catalog and trailer is created.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutPath, "out", "o", "plan.json", "plan file to create or append to")
}

func runImport(cmd *cobra.Command, args []string) error {
	srcPath := args[0]

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(srcPath)) {
	case ".xlsx":
		result = importer.ImportExcel(srcPath)
	default:
		result = importer.ImportCSV(srcPath)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if len(result.Items) == 0 {
		return fmt.Errorf("no importable cargo in %s", srcPath)
	}

	plan, err := project.LoadPlan(importOutPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load plan: %w", err)
		}
		plan = model.NewPlan()
		plan.Name = strings.TrimSuffix(filepath.Base(importOutPath), filepath.Ext(importOutPath))
		plan.Settings = configuredSettings()
	}

	importer.ApplyToPlan(&plan, result.Items)

	if err := project.SavePlan(importOutPath, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	rememberRecentPlan(importOutPath)

	total := 0
	for _, imp := range result.Items {
		total += imp.Quantity
	}
	fmt.Printf("imported %d item types (%d instances) into %s\n", len(result.Items), total, importOutPath)
	return nil
}
