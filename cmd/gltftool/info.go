package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.gltf|file.glb>",
	Short: "Show asset header and collection counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := gltf.ParseFile(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Asset:      %s\n", args[0])
	cmd.Printf("Version:    %s\n", doc.Asset.Version)
	if doc.Asset.Generator != "" {
		cmd.Printf("Generator:  %s\n", doc.Asset.Generator)
	}
	if doc.Asset.Copyright != "" {
		cmd.Printf("Copyright:  %s\n", doc.Asset.Copyright)
	}
	cmd.Println()

	counts := []struct {
		name  string
		count int
	}{
		{"scenes", len(doc.Scenes)},
		{"nodes", len(doc.Nodes)},
		{"meshes", len(doc.Meshes)},
		{"materials", len(doc.Materials)},
		{"images", len(doc.Images)},
		{"skins", len(doc.Skins)},
		{"animations", len(doc.Animations)},
		{"accessors", len(doc.Accessors)},
		{"bufferViews", len(doc.BufferViews)},
		{"buffers", len(doc.Buffers)},
	}
	for _, c := range counts {
		if c.count > 0 {
			cmd.Printf("  %-12s %d\n", c.name, c.count)
		}
	}

	var totalBytes int
	for _, buf := range doc.Buffers {
		totalBytes += buf.ByteLength
	}
	if totalBytes > 0 {
		cmd.Printf("\nBuffer data: %.2f KB\n", float64(totalBytes)/1024)
	}
	return nil
}
