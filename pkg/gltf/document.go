package gltf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Structural and parse errors.
var (
	ErrInvalidDocument = errors.New("invalid glTF document")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// SamplerPath identifies one animation sampler by its position in the
// document: animations[Animation].samplers[Sampler]. Paths are resolved
// with explicit bounds checks; a dangling index is a structural error.
type SamplerPath struct {
	Animation int
	Sampler   int
}

// String returns the path in JSON-pointer form.
func (p SamplerPath) String() string {
	return fmt.Sprintf("/animations/%d/samplers/%d", p.Animation, p.Sampler)
}

// Parse parses a glTF JSON document from a byte slice.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// ParseFile parses a glTF document from disk. Files carrying the GLB
// container magic are unpacked as binary containers; anything else is
// treated as JSON text. The file's directory becomes the base for
// resolving external buffer URIs.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}

	var doc *Document
	if bytes.HasPrefix(data, glbMagicBytes) {
		doc, err = ParseGLB(data)
	} else {
		doc, err = Parse(data)
	}
	if err != nil {
		return nil, err
	}
	doc.dir = filepath.Dir(path)
	return doc, nil
}

// SetDir sets the directory external buffer URIs resolve against.
func (d *Document) SetDir(dir string) { d.dir = dir }

// Encode serializes the document back to indented glTF JSON.
func (d *Document) Encode() ([]byte, error) {
	return d.EncodeIndent("    ")
}

// EncodeIndent serializes the document as glTF JSON with the given
// indentation unit.
func (d *Document) EncodeIndent(indent string) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", indent)
	if err != nil {
		return nil, fmt.Errorf("encoding glTF document: %w", err)
	}
	return data, nil
}

// WriteFile serializes the document as JSON text and writes it to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AnimationSampler resolves a sampler path against the document,
// failing with a structural error when either index is out of bounds.
func (d *Document) AnimationSampler(path SamplerPath) (*AnimationSampler, error) {
	if path.Animation < 0 || path.Animation >= len(d.Animations) {
		return nil, fmt.Errorf("%w: animation %d of %d", ErrIndexOutOfRange, path.Animation, len(d.Animations))
	}
	anim := &d.Animations[path.Animation]
	if path.Sampler < 0 || path.Sampler >= len(anim.Samplers) {
		return nil, fmt.Errorf("%w: sampler %d of %d in animation %d", ErrIndexOutOfRange, path.Sampler, len(anim.Samplers), path.Animation)
	}
	return &anim.Samplers[path.Sampler], nil
}

// AccessorAt returns the accessor at index, bounds-checked.
func (d *Document) AccessorAt(index int) (*Accessor, error) {
	if index < 0 || index >= len(d.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrIndexOutOfRange, index, len(d.Accessors))
	}
	return &d.Accessors[index], nil
}

// BufferViewAt returns the buffer view at index, bounds-checked.
func (d *Document) BufferViewAt(index int) (*BufferView, error) {
	if index < 0 || index >= len(d.BufferViews) {
		return nil, fmt.Errorf("%w: bufferView %d of %d", ErrIndexOutOfRange, index, len(d.BufferViews))
	}
	return &d.BufferViews[index], nil
}

// BufferAt returns the buffer at index, bounds-checked.
func (d *Document) BufferAt(index int) (*Buffer, error) {
	if index < 0 || index >= len(d.Buffers) {
		return nil, fmt.Errorf("%w: buffer %d of %d", ErrIndexOutOfRange, index, len(d.Buffers))
	}
	return &d.Buffers[index], nil
}
