package gltf

import (
	"strings"
	"testing"
)

// newSamplerDoc builds a document with one animation sampler whose
// input (scalar times) and output (typ values) are packed into an
// embedded buffer.
func newSamplerDoc(input, output []float32, typ ElementType, interpolation string) *Document {
	raw := append(packFloats(input), packFloats(output)...)

	inputIdx, outputIdx := 0, 1
	doc := &Document{
		Asset:   Asset{Version: "2.0"},
		Buffers: []Buffer{{URI: EncodeDataURI(raw, OctetStreamMime), ByteLength: len(raw)}},
		BufferViews: []BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 4 * len(input)},
			{Buffer: 0, ByteOffset: 4 * len(input), ByteLength: 4 * len(output)},
		},
		Accessors: []Accessor{
			{BufferView: &inputIdx, ComponentType: ComponentFloat, Count: len(input), Type: TypeScalar},
			{BufferView: &outputIdx, ComponentType: ComponentFloat, Count: len(output) / typ.ComponentCount(), Type: typ},
		},
		Animations: []Animation{{
			Samplers: []AnimationSampler{{Input: &inputIdx, Output: &outputIdx, Interpolation: interpolation}},
		}},
	}
	// Accessor indices happen to equal view indices here.
	return doc
}

func samplerAt(t *testing.T, doc *Document, path SamplerPath) *AnimationSampler {
	t.Helper()
	s, err := doc.AnimationSampler(path)
	if err != nil {
		t.Fatalf("resolving sampler: %v", err)
	}
	return s
}

func TestExtractSamplerData(t *testing.T) {
	input := []float32{0, 0.5, 1}
	output := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	doc := newSamplerDoc(input, output, TypeVec3, InterpolationLinear)

	path := SamplerPath{Animation: 0, Sampler: 0}
	if err := doc.ExtractSamplerData(path); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	s := samplerAt(t, doc, path)
	if s.Edit == nil {
		t.Fatal("expected sampler edit state after extraction")
	}
	if s.Edit.Type != TypeVec3 {
		t.Errorf("expected type VEC3, got %s", s.Edit.Type)
	}
	if len(s.Edit.Input) != 3 || len(s.Edit.Output) != 9 {
		t.Errorf("expected 3 inputs / 9 outputs, got %d / %d", len(s.Edit.Input), len(s.Edit.Output))
	}
	for i, v := range input {
		if s.Edit.Input[i] != v {
			t.Errorf("input[%d]: expected %g, got %g", i, v, s.Edit.Input[i])
		}
	}
}

func TestExtractSamplerData_UndefinedAccessors(t *testing.T) {
	doc := &Document{
		Asset:      Asset{Version: "2.0"},
		Animations: []Animation{{Samplers: []AnimationSampler{{}}}},
	}

	path := SamplerPath{Animation: 0, Sampler: 0}
	if err := doc.ExtractSamplerData(path); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	s := samplerAt(t, doc, path)
	if s.Edit == nil {
		t.Fatal("expected sampler edit state")
	}
	if len(s.Edit.Input) != 0 || len(s.Edit.Output) != 0 {
		t.Errorf("expected empty arrays, got %d / %d values", len(s.Edit.Input), len(s.Edit.Output))
	}
	if s.Edit.Type != TypeScalar {
		t.Errorf("expected SCALAR default, got %s", s.Edit.Type)
	}
}

func TestExtractSamplerData_BadPath(t *testing.T) {
	doc := &Document{Asset: Asset{Version: "2.0"}}
	err := doc.ExtractSamplerData(SamplerPath{Animation: 0, Sampler: 0})
	if err == nil {
		t.Fatal("expected structural error for missing animation")
	}
}

func TestPackSamplerData_RoundTrip(t *testing.T) {
	input := []float32{0, 0.25, 0.5, 0.75}
	output := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	doc := newSamplerDoc(input, output, TypeVec3, InterpolationLinear)
	path := SamplerPath{Animation: 0, Sampler: 0}

	if err := doc.ExtractSamplerData(path); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if err := doc.PackSamplerData(path); err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	s := samplerAt(t, doc, path)
	if s.Edit != nil {
		t.Error("edit state should be cleared after packing")
	}

	gotIn, inType, err := doc.DecodeAccessor(*s.Input)
	if err != nil {
		t.Fatalf("decoding packed input: %v", err)
	}
	if inType != TypeScalar {
		t.Errorf("input type: expected SCALAR, got %s", inType)
	}
	for i, v := range input {
		if gotIn[i] != v {
			t.Errorf("input[%d]: expected %g, got %g", i, v, gotIn[i])
		}
	}

	gotOut, outType, err := doc.DecodeAccessor(*s.Output)
	if err != nil {
		t.Fatalf("decoding packed output: %v", err)
	}
	if outType != TypeVec3 {
		t.Errorf("output type: expected VEC3, got %s", outType)
	}
	if len(gotOut) != len(output) {
		t.Fatalf("output length: expected %d, got %d", len(output), len(gotOut))
	}
	for i, v := range output {
		if gotOut[i] != v {
			t.Errorf("output[%d]: expected %g, got %g", i, v, gotOut[i])
		}
	}

	outAcc, _ := doc.AccessorAt(*s.Output)
	if outAcc.Count != 4 {
		t.Errorf("output count: expected 4, got %d", outAcc.Count)
	}
	if outAcc.ComponentType != ComponentFloat {
		t.Errorf("output component type: expected FLOAT, got %s", outAcc.ComponentType)
	}
}

func TestPackSamplerData_MinMax(t *testing.T) {
	doc := newSamplerDoc([]float32{0, 1}, []float32{1, 2, 3, -1, 5, 0}, TypeVec3, InterpolationLinear)
	path := SamplerPath{Animation: 0, Sampler: 0}

	if err := doc.ExtractSamplerData(path); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if err := doc.PackSamplerData(path); err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	s := samplerAt(t, doc, path)
	acc, _ := doc.AccessorAt(*s.Output)

	wantMin := []float32{-1, 2, 0}
	wantMax := []float32{1, 5, 3}
	for c := 0; c < 3; c++ {
		if acc.Min[c] != wantMin[c] {
			t.Errorf("min[%d]: expected %g, got %g", c, wantMin[c], acc.Min[c])
		}
		if acc.Max[c] != wantMax[c] {
			t.Errorf("max[%d]: expected %g, got %g", c, wantMax[c], acc.Max[c])
		}
	}
}

func TestPackSamplerData_Alignment(t *testing.T) {
	// A 5-byte pre-existing buffer forces alignment padding.
	doc := &Document{
		Asset:   Asset{Version: "2.0"},
		Buffers: []Buffer{{URI: EncodeDataURI([]byte{1, 2, 3, 4, 5}, OctetStreamMime), ByteLength: 5}},
		Animations: []Animation{{Samplers: []AnimationSampler{{
			Edit: &SamplerEdit{
				Input:  []float32{0, 1},
				Output: []float32{10, 20},
				Type:   TypeScalar,
			},
		}}}},
	}

	if err := doc.PackSamplerData(SamplerPath{Animation: 0, Sampler: 0}); err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	for i, view := range doc.BufferViews {
		if view.ByteOffset%4 != 0 {
			t.Errorf("bufferView %d byteOffset %d is not 4-byte aligned", i, view.ByteOffset)
		}
	}

	// 5 bytes padded to 8, plus 2 float32 inputs and 2 float32 outputs.
	wantLen := 8 + 8 + 8
	if doc.Buffers[0].ByteLength != wantLen {
		t.Errorf("buffer byteLength: expected %d, got %d", wantLen, doc.Buffers[0].ByteLength)
	}
	raw, err := doc.BufferBytes(0)
	if err != nil {
		t.Fatalf("materializing buffer: %v", err)
	}
	if len(raw) != wantLen {
		t.Errorf("buffer payload: expected %d bytes, got %d", wantLen, len(raw))
	}

	// Original bytes survive ahead of the padding.
	for i, want := range []byte{1, 2, 3, 4, 5, 0, 0, 0} {
		if raw[i] != want {
			t.Errorf("byte %d: expected %d, got %d", i, want, raw[i])
		}
	}
}

func TestPackSamplerData_CubicSplineMultiplier(t *testing.T) {
	// CUBICSPLINE stores in-tangent, value and out-tangent per keyframe.
	input := []float32{0, 1}
	output := make([]float32, 2*3*3) // 2 keys x VEC3 x 3
	doc := newSamplerDoc(input, output, TypeVec3, InterpolationCubicSpline)
	path := SamplerPath{Animation: 0, Sampler: 0}

	s := samplerAt(t, doc, path)
	s.Edit = &SamplerEdit{Input: input, Output: output, Type: TypeVec3}
	if err := doc.PackSamplerData(path); err != nil {
		t.Fatalf("pack failed for valid cubic-spline data: %v", err)
	}

	// One value short must be rejected.
	s = samplerAt(t, doc, path)
	s.Edit = &SamplerEdit{Input: input, Output: output[:17], Type: TypeVec3}
	err := doc.PackSamplerData(path)
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
	if !strings.Contains(err.Error(), "expected 18") || !strings.Contains(err.Error(), "got 17") {
		t.Errorf("error should name expected/actual counts, got: %v", err)
	}
}

func TestPackSamplerData_IdempotentFailure(t *testing.T) {
	doc := newSamplerDoc([]float32{0, 1, 2, 3}, []float32{1, 2, 3, 4}, TypeScalar, InterpolationLinear)
	path := SamplerPath{Animation: 0, Sampler: 0}

	s := samplerAt(t, doc, path)
	s.Edit = &SamplerEdit{
		Input:  []float32{0, 1, 2, 3},
		Output: []float32{1, 2, 3, 4, 5},
		Type:   TypeScalar,
	}

	bufferBefore := doc.Buffers[0]
	viewsBefore := len(doc.BufferViews)
	accessorsBefore := len(doc.Accessors)

	err1 := doc.PackSamplerData(path)
	err2 := doc.PackSamplerData(path)
	if err1 == nil || err2 == nil {
		t.Fatal("expected validation errors")
	}
	if err1.Error() != err2.Error() {
		t.Errorf("errors differ between retries:\n  %v\n  %v", err1, err2)
	}

	if doc.Buffers[0].URI != bufferBefore.URI || doc.Buffers[0].ByteLength != bufferBefore.ByteLength {
		t.Error("buffer mutated by failed pack")
	}
	if len(doc.BufferViews) != viewsBefore {
		t.Errorf("buffer views mutated: %d -> %d", viewsBefore, len(doc.BufferViews))
	}
	if len(doc.Accessors) != accessorsBefore {
		t.Errorf("accessors mutated: %d -> %d", accessorsBefore, len(doc.Accessors))
	}
	if s.Edit == nil {
		t.Error("edit state must survive a failed pack")
	}
}

func TestPackSamplerData_StructuralFailureMutatesNothing(t *testing.T) {
	// A dangling output accessor index must abort before any buffer
	// view or accessor is committed.
	doc := newSamplerDoc([]float32{0, 1}, []float32{1, 2}, TypeScalar, InterpolationLinear)
	path := SamplerPath{Animation: 0, Sampler: 0}

	s := samplerAt(t, doc, path)
	dangling := 99
	s.Output = &dangling
	s.Edit = &SamplerEdit{Input: []float32{0, 1}, Output: []float32{1, 2}, Type: TypeScalar}

	uriBefore := doc.Buffers[0].URI
	viewsBefore := len(doc.BufferViews)
	accessorsBefore := len(doc.Accessors)

	if err := doc.PackSamplerData(path); err == nil {
		t.Fatal("expected structural error for dangling accessor index")
	}

	if doc.Buffers[0].URI != uriBefore {
		t.Error("buffer mutated by failed pack")
	}
	if len(doc.BufferViews) != viewsBefore {
		t.Errorf("buffer views mutated: %d -> %d", viewsBefore, len(doc.BufferViews))
	}
	if len(doc.Accessors) != accessorsBefore {
		t.Errorf("accessors mutated: %d -> %d", accessorsBefore, len(doc.Accessors))
	}
	if s.Edit == nil {
		t.Error("edit state must survive a failed pack")
	}
}

func TestPackSamplerData_CreatesAccessorsAndBuffer(t *testing.T) {
	// Packing a sampler authored from scratch in an empty document.
	doc := &Document{
		Asset: Asset{Version: "2.0"},
		Animations: []Animation{{Samplers: []AnimationSampler{{
			Edit: &SamplerEdit{
				Input:  []float32{0},
				Output: []float32{1, 2},
				Type:   TypeVec2,
			},
		}}}},
	}

	path := SamplerPath{Animation: 0, Sampler: 0}
	if err := doc.PackSamplerData(path); err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	s := samplerAt(t, doc, path)
	if s.Input == nil || s.Output == nil {
		t.Fatal("pack should create input and output accessors")
	}
	if len(doc.Buffers) != 1 || !IsDataURI(doc.Buffers[0].URI) {
		t.Fatal("pack should create an embedded buffer")
	}

	values, typ, err := doc.DecodeAccessor(*s.Output)
	if err != nil {
		t.Fatalf("decoding created output: %v", err)
	}
	if typ != TypeVec2 || len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Errorf("unexpected packed output: type=%s values=%v", typ, values)
	}
}

func TestPackSamplerData_NotEditing(t *testing.T) {
	doc := newSamplerDoc([]float32{0}, []float32{1}, TypeScalar, InterpolationLinear)
	err := doc.PackSamplerData(SamplerPath{Animation: 0, Sampler: 0})
	if err == nil || !strings.Contains(err.Error(), "no editable data") {
		t.Errorf("expected not-editing error, got %v", err)
	}
}

func TestComponentBounds(t *testing.T) {
	tests := []struct {
		name    string
		values  []float32
		comps   int
		wantMin []float32
		wantMax []float32
	}{
		{
			name:    "scalar",
			values:  []float32{3, -2, 7},
			comps:   1,
			wantMin: []float32{-2},
			wantMax: []float32{7},
		},
		{
			name:    "vec2",
			values:  []float32{1, 10, -5, 2},
			comps:   2,
			wantMin: []float32{-5, 2},
			wantMax: []float32{1, 10},
		},
		{
			name:    "empty",
			values:  nil,
			comps:   3,
			wantMin: nil,
			wantMax: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := componentBounds(tt.values, tt.comps)
			if len(gotMin) != len(tt.wantMin) || len(gotMax) != len(tt.wantMax) {
				t.Fatalf("bounds length mismatch: min=%v max=%v", gotMin, gotMax)
			}
			for i := range tt.wantMin {
				if gotMin[i] != tt.wantMin[i] {
					t.Errorf("min[%d]: expected %g, got %g", i, tt.wantMin[i], gotMin[i])
				}
				if gotMax[i] != tt.wantMax[i] {
					t.Errorf("max[%d]: expected %g, got %g", i, tt.wantMax[i], gotMax[i])
				}
			}
		})
	}
}
