package gltf

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Buffer resolution errors.
var (
	ErrInvalidDataURI = errors.New("invalid data URI")
	ErrMissingBinData = errors.New("buffer has no URI and no BIN chunk backs it")
)

// OctetStreamMime is the MIME type used for embedded binary buffers.
const OctetStreamMime = "application/octet-stream"

const dataURIPrefix = "data:"

// IsDataURI reports whether uri is an embedded data URI.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, dataURIPrefix)
}

// DecodeDataURI decodes an embedded base64 data URI, returning the
// payload bytes and the declared MIME type.
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !IsDataURI(uri) {
		return nil, "", fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}
	rest := uri[len(dataURIPrefix):]

	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("%w: missing comma separator", ErrInvalidDataURI)
	}
	meta, payload := rest[:comma], rest[comma+1:]

	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", fmt.Errorf("%w: only base64 encoding is supported", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, mime, nil
}

// EncodeDataURI encodes data as a base64 data URI with the given MIME type.
func EncodeDataURI(data []byte, mime string) string {
	return dataURIPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// BufferBytes materializes the full byte content of the buffer at
// index: decoded from a data URI, read from an external file relative
// to the document's directory, or taken from the GLB BIN chunk when the
// buffer has no URI.
func (d *Document) BufferBytes(index int) ([]byte, error) {
	buf, err := d.BufferAt(index)
	if err != nil {
		return nil, err
	}

	switch {
	case buf.URI == "":
		if d.bin == nil {
			return nil, fmt.Errorf("%w: buffer %d", ErrMissingBinData, index)
		}
		return d.bin, nil
	case IsDataURI(buf.URI):
		data, _, err := DecodeDataURI(buf.URI)
		if err != nil {
			return nil, fmt.Errorf("buffer %d: %w", index, err)
		}
		return data, nil
	default:
		path := buf.URI
		if !filepath.IsAbs(path) {
			path = filepath.Join(d.dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading external buffer %d (%s): %w", index, buf.URI, err)
		}
		return data, nil
	}
}

// viewBytes returns the window of buffer bytes covered by the buffer
// view at index, bounds-checked against the materialized buffer.
func (d *Document) viewBytes(index int) ([]byte, *BufferView, error) {
	view, err := d.BufferViewAt(index)
	if err != nil {
		return nil, nil, err
	}
	raw, err := d.BufferBytes(view.Buffer)
	if err != nil {
		return nil, nil, err
	}
	end := view.ByteOffset + view.ByteLength
	if view.ByteOffset < 0 || end > len(raw) {
		return nil, nil, fmt.Errorf("bufferView %d window [%d:%d) exceeds buffer %d length %d",
			index, view.ByteOffset, end, view.Buffer, len(raw))
	}
	return raw[view.ByteOffset:end], view, nil
}
