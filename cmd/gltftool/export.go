package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/gltfkit/internal/exporter"
	"github.com/Faultbox/gltfkit/pkg/gltf"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export <file.gltf|file.glb>",
	Short: "Export embedded image and buffer payloads to files",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := gltf.ParseFile(args[0])
	if err != nil {
		return err
	}

	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Dir
	}

	exported, err := exporter.Export(doc, dir)
	if err != nil {
		return err
	}

	if len(exported) == 0 {
		cmd.Println("No embedded payloads found.")
		return nil
	}
	for _, e := range exported {
		cmd.Printf("Exported: %s (%s, %d bytes)\n", e.Path, e.MimeType, e.Size)
	}
	return nil
}
