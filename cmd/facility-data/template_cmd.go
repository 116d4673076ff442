package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/facilops/facilops/modules/contractors/services"
)

func newTemplateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write sample CSV templates for both entity types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTemplates(dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write templates into")
	return cmd
}

func writeTemplates(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return withCode(exitUsage, err)
	}
	files := map[string][]byte{
		"contractors-template.csv": services.ContractorTemplateCSV(),
		"insurance-template.csv":   services.InsuranceTemplateCSV(),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return withCode(exitUsage, fmt.Errorf("write %s: %w", path, err))
		}
	}
	return writeJSONLine(map[string]any{"written": len(files), "dir": dir})
}
