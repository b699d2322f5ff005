package gltf

import (
	"encoding/binary"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// GLB container errors.
var (
	ErrInvalidGLBMagic       = errors.New("invalid GLB magic: expected 'glTF'")
	ErrUnsupportedGLBVersion = errors.New("unsupported GLB container version")
	ErrTruncatedGLBData      = errors.New("truncated GLB data")
	ErrMissingJSONChunk      = errors.New("GLB container has no JSON chunk")
)

// GLB container constants.
const (
	glbMagic        = 0x46546C67 // "glTF"
	glbVersion      = 2
	glbChunkJSON    = 0x4E4F534A // "JSON"
	glbChunkBin     = 0x004E4942 // "BIN\0"
	glbHeaderSize   = 12
	glbChunkHdrSize = 8
)

var glbMagicBytes = []byte("glTF")

// ParseGLB unpacks a binary glTF container: a 12-byte header followed
// by 4-byte-aligned chunks. The JSON chunk is parsed as the document;
// a BIN chunk, when present, backs the first URI-less buffer.
func ParseGLB(data []byte) (*Document, error) {
	if len(data) < glbHeaderSize {
		return nil, ErrTruncatedGLBData
	}
	if binary.LittleEndian.Uint32(data) != glbMagic {
		return nil, ErrInvalidGLBMagic
	}
	version := binary.LittleEndian.Uint32(data[4:])
	if version != glbVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedGLBVersion, version)
	}
	total := int(binary.LittleEndian.Uint32(data[8:]))
	if total > len(data) {
		return nil, fmt.Errorf("%w: header declares %d bytes, have %d", ErrTruncatedGLBData, total, len(data))
	}

	var jsonChunk, binChunk []byte
	offset := glbHeaderSize
	for offset+glbChunkHdrSize <= total {
		length := int(binary.LittleEndian.Uint32(data[offset:]))
		kind := binary.LittleEndian.Uint32(data[offset+4:])
		offset += glbChunkHdrSize
		if offset+length > total {
			return nil, fmt.Errorf("%w: chunk exceeds container", ErrTruncatedGLBData)
		}

		switch kind {
		case glbChunkJSON:
			jsonChunk = data[offset : offset+length]
		case glbChunkBin:
			binChunk = data[offset : offset+length]
		}
		// Chunks start on 4-byte boundaries.
		offset += (length + 3) &^ 3
	}

	if jsonChunk == nil {
		return nil, ErrMissingJSONChunk
	}

	doc, err := Parse(jsonChunk)
	if err != nil {
		return nil, err
	}
	doc.bin = binChunk
	return doc, nil
}

// EncodeGLB packs the document into a binary glTF container. Buffer 0
// becomes the BIN chunk: its bytes are materialized (from a data URI,
// an external file, or an existing BIN chunk) and its URI is dropped in
// the emitted JSON. The document itself is not mutated.
func (d *Document) EncodeGLB() ([]byte, error) {
	var bin []byte
	if len(d.Buffers) > 0 {
		var err error
		bin, err = d.BufferBytes(0)
		if err != nil {
			return nil, err
		}
	}

	// Emit JSON with buffer 0 stripped of its URI; work on a copy so
	// the caller's document is untouched.
	out := *d
	if len(d.Buffers) > 0 {
		out.Buffers = append([]Buffer(nil), d.Buffers...)
		out.Buffers[0].URI = ""
		out.Buffers[0].ByteLength = len(bin)
	}
	jsonChunk, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("encoding GLB JSON chunk: %w", err)
	}

	// JSON chunks pad with spaces, BIN chunks with zeros.
	jsonPadded := padChunk(jsonChunk, ' ')
	binPadded := padChunk(append([]byte(nil), bin...), 0)

	total := glbHeaderSize + glbChunkHdrSize + len(jsonPadded)
	if len(bin) > 0 {
		total += glbChunkHdrSize + len(binPadded)
	}

	glb := make([]byte, 0, total)
	glb = appendUint32(glb, glbMagic)
	glb = appendUint32(glb, glbVersion)
	glb = appendUint32(glb, uint32(total))

	glb = appendUint32(glb, uint32(len(jsonPadded)))
	glb = appendUint32(glb, glbChunkJSON)
	glb = append(glb, jsonPadded...)

	if len(bin) > 0 {
		glb = appendUint32(glb, uint32(len(binPadded)))
		glb = appendUint32(glb, glbChunkBin)
		glb = append(glb, binPadded...)
	}
	return glb, nil
}

// EmbedBinChunk converts a GLB-backed document into self-contained JSON
// form by rewriting buffer 0 as an embedded base64 data URI. A document
// with no BIN chunk is returned unchanged.
func (d *Document) EmbedBinChunk() {
	if d.bin == nil || len(d.Buffers) == 0 {
		return
	}
	d.Buffers[0].URI = EncodeDataURI(d.bin, OctetStreamMime)
	d.Buffers[0].ByteLength = len(d.bin)
	d.bin = nil
}

// padChunk pads data to a 4-byte boundary with the given filler.
func padChunk(data []byte, fill byte) []byte {
	for len(data)%4 != 0 {
		data = append(data, fill)
	}
	return data
}

func appendUint32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}
