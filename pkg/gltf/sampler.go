package gltf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Sampler edit errors.
var (
	ErrNotEditing        = errors.New("sampler has no editable data to pack")
	ErrLengthMismatch    = errors.New("sampler data length mismatch")
	ErrInternalAlignment = errors.New("internal defect: packed array byte length is not a multiple of 4")
)

// ExtractSamplerData decodes the keyframe data of the sampler at path
// into editable form and attaches it to the sampler. The input and
// output accessors are decoded into flat value arrays; an undefined
// accessor yields an empty array and a SCALAR type tag so samplers can
// be authored before their data exists. No other mutation happens.
func (d *Document) ExtractSamplerData(path SamplerPath) error {
	s, err := d.AnimationSampler(path)
	if err != nil {
		return err
	}

	input, _, err := d.decodeOptional(s.Input)
	if err != nil {
		return fmt.Errorf("sampler %s input: %w", path, err)
	}
	output, typ, err := d.decodeOptional(s.Output)
	if err != nil {
		return fmt.Errorf("sampler %s output: %w", path, err)
	}

	s.Edit = &SamplerEdit{Input: input, Output: output, Type: typ}
	return nil
}

// decodeOptional decodes an accessor by optional index. A nil index
// yields an empty sequence and the scalar tag.
func (d *Document) decodeOptional(index *int) ([]float32, ElementType, error) {
	if index == nil {
		return []float32{}, TypeScalar, nil
	}
	return d.DecodeAccessor(*index)
}

// PackSamplerData commits the editable data attached to the sampler at
// path back into the document: the input and output arrays are
// re-encoded as little-endian float32, appended to buffer 0 behind
// 4-byte alignment padding, and the sampler's accessors and buffer
// views are created or overwritten with recomputed min/max bounds.
// The buffer is rewritten as an embedded base64 data URI covering the
// whole payload and the edit state is cleared.
//
// Validation runs before any mutation: a failed pack leaves the
// document, including the edit state, exactly as it was.
func (d *Document) PackSamplerData(path SamplerPath) error {
	s, err := d.AnimationSampler(path)
	if err != nil {
		return err
	}
	if s.Edit == nil {
		return fmt.Errorf("%w: %s", ErrNotEditing, path)
	}

	comps := s.Edit.Type.ComponentCount()
	if comps == 0 {
		return fmt.Errorf("%w: %q on sampler %s", ErrUnknownElementType, s.Edit.Type, path)
	}

	mult := 1
	if s.Interpolation == InterpolationCubicSpline {
		mult = 3
	}
	expected := len(s.Edit.Input) * comps * mult
	if len(s.Edit.Output) != expected {
		return fmt.Errorf("%w: expected %d output values (%d inputs x %d components x %d for %s interpolation), got %d",
			ErrLengthMismatch, expected, len(s.Edit.Input), comps, mult,
			interpolationOrDefault(s.Interpolation), len(s.Edit.Output))
	}

	// Existing accessor entries are overwritten in place; a dangling
	// index is a structural error, caught before any mutation.
	for _, idx := range []*int{s.Input, s.Output} {
		if idx == nil {
			continue
		}
		if _, err := d.AccessorAt(*idx); err != nil {
			return fmt.Errorf("sampler %s: %w", path, err)
		}
	}

	// Encode both arrays up front so the alignment invariant is checked
	// before the first accessor or buffer-view mutation commits.
	inPacked := packFloats(s.Edit.Input)
	outPacked := packFloats(s.Edit.Output)
	for _, packed := range [][]byte{inPacked, outPacked} {
		if len(packed)%4 != 0 {
			return fmt.Errorf("%w: %d bytes", ErrInternalAlignment, len(packed))
		}
	}

	// Materialize the target buffer before mutating anything, so an
	// unreadable external buffer aborts cleanly.
	var raw []byte
	if len(d.Buffers) > 0 {
		existing, err := d.BufferBytes(0)
		if err != nil {
			return err
		}
		// Appended to below; never alias the caller's backing bytes.
		raw = append(make([]byte, 0, len(existing)), existing...)
	} else {
		d.Buffers = append(d.Buffers, Buffer{})
	}

	// Buffer-view starts of numeric accessor data must be 4-byte
	// aligned; pad the existing payload up with zeros.
	for len(raw)%4 != 0 {
		raw = append(raw, 0)
	}

	raw = d.appendPacked(raw, inPacked, s.Edit.Input, TypeScalar, &s.Input)
	raw = d.appendPacked(raw, outPacked, s.Edit.Output, s.Edit.Type, &s.Output)

	d.Buffers[0].URI = EncodeDataURI(raw, OctetStreamMime)
	d.Buffers[0].ByteLength = len(raw)
	d.bin = nil
	s.Edit = nil
	return nil
}

// appendPacked appends pre-encoded little-endian float32 data to raw
// behind a new buffer view and creates or overwrites the accessor named
// by *accIndex to describe it. The caller has already validated packed.
func (d *Document) appendPacked(raw, packed []byte, values []float32, typ ElementType, accIndex **int) []byte {
	d.BufferViews = append(d.BufferViews, BufferView{
		Buffer:     0,
		ByteOffset: len(raw),
		ByteLength: len(packed),
	})
	viewIndex := len(d.BufferViews) - 1

	comps := typ.ComponentCount()
	minVals, maxVals := componentBounds(values, comps)
	acc := Accessor{
		BufferView:    &viewIndex,
		ComponentType: ComponentFloat,
		Count:         len(values) / comps,
		Type:          typ,
		Min:           minVals,
		Max:           maxVals,
	}

	if *accIndex == nil {
		d.Accessors = append(d.Accessors, acc)
		idx := len(d.Accessors) - 1
		*accIndex = &idx
	} else {
		d.Accessors[**accIndex] = acc
	}

	return append(raw, packed...)
}

// packFloats encodes values as consecutive little-endian float32.
func packFloats(values []float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// componentBounds computes per-component minimum and maximum across all
// elements; the component index of a value is its linear index modulo
// the component count. Empty input yields nil bounds.
func componentBounds(values []float32, comps int) (minVals, maxVals []float32) {
	if len(values) == 0 {
		return nil, nil
	}
	minVals = make([]float32, comps)
	maxVals = make([]float32, comps)
	for c := 0; c < comps; c++ {
		minVals[c] = float32(math.Inf(1))
		maxVals[c] = float32(math.Inf(-1))
	}
	for i, v := range values {
		c := i % comps
		if v < minVals[c] {
			minVals[c] = v
		}
		if v > maxVals[c] {
			maxVals[c] = v
		}
	}
	return minVals, maxVals
}

// interpolationOrDefault names the effective interpolation mode; the
// format default is LINEAR.
func interpolationOrDefault(mode string) string {
	if mode == "" {
		return InterpolationLinear
	}
	return mode
}
