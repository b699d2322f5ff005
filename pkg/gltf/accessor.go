package gltf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Accessor decoding errors.
var (
	ErrUnknownComponentType = errors.New("unknown accessor component type")
	ErrUnknownElementType   = errors.New("unknown accessor element type")
	ErrAccessorOutOfBounds  = errors.New("accessor data exceeds buffer view")
)

// DecodeAccessor decodes the accessor at index into a flat sequence of
// component values in element order, together with the accessor's
// element-type tag. Component decoding honors the declared storage type
// and the view's byte stride; every element read is bounds-checked
// against the buffer view window. The document is not mutated.
//
// An accessor with no buffer view decodes to all zeros, matching the
// format's reading rules for sparse-initialized data.
func (d *Document) DecodeAccessor(index int) ([]float32, ElementType, error) {
	acc, err := d.AccessorAt(index)
	if err != nil {
		return nil, "", err
	}

	comps := acc.Type.ComponentCount()
	if comps == 0 {
		return nil, "", fmt.Errorf("%w: %q in accessor %d", ErrUnknownElementType, acc.Type, index)
	}
	compSize := acc.ComponentType.ByteSize()
	if compSize == 0 {
		return nil, "", fmt.Errorf("%w: %d in accessor %d", ErrUnknownComponentType, acc.ComponentType, index)
	}

	values := make([]float32, acc.Count*comps)
	if acc.BufferView == nil {
		return values, acc.Type, nil
	}

	window, view, err := d.viewBytes(*acc.BufferView)
	if err != nil {
		return nil, "", err
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = compSize * comps
	}

	for i := 0; i < acc.Count; i++ {
		base := acc.ByteOffset + i*stride
		if base+compSize*comps > len(window) {
			return nil, "", fmt.Errorf("%w: element %d of accessor %d", ErrAccessorOutOfBounds, i, index)
		}
		for c := 0; c < comps; c++ {
			values[i*comps+c] = decodeComponent(window[base+c*compSize:], acc.ComponentType)
		}
	}
	return values, acc.Type, nil
}

// decodeComponent reads one little-endian component from b.
func decodeComponent(b []byte, ct ComponentType) float32 {
	switch ct {
	case ComponentByte:
		return float32(int8(b[0]))
	case ComponentUnsignedByte:
		return float32(b[0])
	case ComponentShort:
		return float32(int16(binary.LittleEndian.Uint16(b)))
	case ComponentUnsignedShort:
		return float32(binary.LittleEndian.Uint16(b))
	case ComponentUnsignedInt:
		return float32(binary.LittleEndian.Uint32(b))
	case ComponentFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	default:
		return 0
	}
}
