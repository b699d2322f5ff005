// gltftool is a CLI utility for authoring glTF 2.0 assets: inspecting
// and outlining documents, extracting and repacking animation sampler
// data, converting between .gltf text and .glb containers, exporting
// embedded payloads, and running the external schema validator.
package main

import (
	"os"

	"github.com/Faultbox/gltfkit/internal/logger"
)

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
