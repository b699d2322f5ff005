package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <file.gltf|file.glb>",
	Short: "Convert between glTF JSON text and the GLB binary container",
	Long: `Converts a .gltf text asset into a packed .glb container (buffer 0
becomes the BIN chunk) or unpacks a .glb back into self-contained JSON
with the BIN chunk embedded as a base64 data URI.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file (default: input with swapped extension)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src := args[0]
	doc, err := gltf.ParseFile(src)
	if err != nil {
		return err
	}

	toGLB := !strings.EqualFold(filepath.Ext(src), ".glb")

	target := convertOutput
	if target == "" {
		ext := ".glb"
		if !toGLB {
			ext = ".gltf"
		}
		target = strings.TrimSuffix(src, filepath.Ext(src)) + ext
	}
	if target == src {
		return fmt.Errorf("conversion target equals source: %s", target)
	}

	if !toGLB {
		doc.EmbedBinChunk()
	}
	if err := writeDocument(doc, target); err != nil {
		return err
	}

	cmd.Printf("Converted %s -> %s\n", src, target)
	return nil
}
