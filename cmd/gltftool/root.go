package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/gltfkit/internal/config"
	"github.com/Faultbox/gltfkit/internal/logger"
	"github.com/Faultbox/gltfkit/pkg/gltf"
)

var (
	flagConfig string
	flagDebug  bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gltftool",
	Short: "glTF 2.0 asset authoring toolkit",
	Long: `gltftool inspects and edits glTF 2.0 assets: document outlines,
animation sampler data extraction and repacking, gltf <-> glb container
conversion, embedded payload export, and schema validation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if flagDebug {
			level = "debug"
		}
		return logger.Init(level, cfg.Logging.LogFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// writeDocument serializes the document to path, choosing the packed
// container form for .glb targets and indented JSON otherwise.
func writeDocument(doc *gltf.Document, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		data, err := doc.EncodeGLB()
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	}

	data, err := doc.EncodeIndent(cfg.Output.Indent)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
