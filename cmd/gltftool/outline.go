package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/gltfkit/internal/outline"
	"github.com/Faultbox/gltfkit/pkg/gltf"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file.gltf|file.glb>",
	Short: "Print the document outline tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := gltf.ParseFile(args[0])
		if err != nil {
			return err
		}
		outline.Render(cmd.OutOrStdout(), outline.Build(doc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
