// Package exporter writes the embedded binary payloads of a glTF
// document (images and buffers carried as base64 data URIs) out to
// individual files for inspection.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfkit/internal/logger"
	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// Exported records one payload written to disk.
type Exported struct {
	Path     string
	MimeType string
	Size     int
}

// extByMime maps the MIME types glTF embeds to file extensions.
var extByMime = map[string]string{
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/webp":               ".webp",
	"image/ktx2":               ".ktx2",
	"application/octet-stream": ".bin",
	"application/gltf-buffer":  ".bin",
}

// Export decodes every embedded image and buffer payload in the
// document and writes each to dir, named after the owning collection
// and index with an extension inferred from the MIME type. A payload
// that fails to decode is reported and skipped; the rest are still
// written. The returned error is non-nil only when nothing could be
// exported at all.
func Export(doc *gltf.Document, dir string) ([]Exported, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	var out []Exported
	var failures int

	export := func(kind string, index int, uri string) {
		if !gltf.IsDataURI(uri) {
			return
		}
		data, mime, err := gltf.DecodeDataURI(uri)
		if err != nil {
			logger.Warn("skipping undecodable payload",
				zap.String("kind", kind), zap.Int("index", index), zap.Error(err))
			failures++
			return
		}

		path := filepath.Join(dir, fmt.Sprintf("%s%d%s", kind, index, extFor(mime)))
		if err := os.WriteFile(path, data, 0644); err != nil {
			logger.Warn("writing payload failed",
				zap.String("path", path), zap.Error(err))
			failures++
			return
		}
		out = append(out, Exported{Path: path, MimeType: mime, Size: len(data)})
	}

	for i, img := range doc.Images {
		export("image", i, img.URI)
	}
	for i, buf := range doc.Buffers {
		export("buffer", i, buf.URI)
	}

	if len(out) == 0 && failures > 0 {
		return nil, fmt.Errorf("no payloads exported (%d failed)", failures)
	}
	return out, nil
}

func extFor(mime string) string {
	if ext, ok := extByMime[mime]; ok {
		return ext
	}
	return ".dat"
}
