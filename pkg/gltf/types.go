// Package gltf provides a typed document model for glTF 2.0 assets and the
// transformations the toolkit applies to them: accessor data extraction and
// repacking, embedded-buffer handling, and GLB container conversion.
package gltf

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// ComponentType is the storage type of a single accessor component,
// using the glTF component-type enumeration codes.
type ComponentType int

const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
)

// ByteSize returns the size in bytes of one component, or 0 for an
// unknown component type.
func (c ComponentType) ByteSize() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

// String returns the glTF constant name for the component type.
func (c ComponentType) String() string {
	switch c {
	case ComponentByte:
		return "BYTE"
	case ComponentUnsignedByte:
		return "UNSIGNED_BYTE"
	case ComponentShort:
		return "SHORT"
	case ComponentUnsignedShort:
		return "UNSIGNED_SHORT"
	case ComponentUnsignedInt:
		return "UNSIGNED_INT"
	case ComponentFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ElementType is the element shape of an accessor: scalar, vector or matrix.
type ElementType string

const (
	TypeScalar ElementType = "SCALAR"
	TypeVec2   ElementType = "VEC2"
	TypeVec3   ElementType = "VEC3"
	TypeVec4   ElementType = "VEC4"
	TypeMat2   ElementType = "MAT2"
	TypeMat3   ElementType = "MAT3"
	TypeMat4   ElementType = "MAT4"
)

// ComponentCount returns the number of components per element, or 0 for
// an unknown element type.
func (t ElementType) ComponentCount() int {
	switch t {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	case TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// Animation sampler interpolation modes.
const (
	InterpolationLinear      = "LINEAR"
	InterpolationStep        = "STEP"
	InterpolationCubicSpline = "CUBICSPLINE"
)

// Asset holds the glTF asset header.
type Asset struct {
	Version    string          `json:"version"`
	MinVersion string          `json:"minVersion,omitempty"`
	Generator  string          `json:"generator,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Buffer is a named byte container, either embedded as a data URI,
// referenced as an external file, or (for GLB) stored in the BIN chunk.
type Buffer struct {
	Name       string          `json:"name,omitempty"`
	URI        string          `json:"uri,omitempty"`
	ByteLength int             `json:"byteLength"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// BufferView is a byte-range window into one buffer, optionally strided.
type BufferView struct {
	Name       string          `json:"name,omitempty"`
	Buffer     int             `json:"buffer"`
	ByteOffset int             `json:"byteOffset,omitempty"`
	ByteLength int             `json:"byteLength"`
	ByteStride int             `json:"byteStride,omitempty"`
	Target     int             `json:"target,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Accessor describes one typed numeric array view over a buffer view.
// Sparse substitution data is carried as raw JSON; the toolkit never
// rewrites it, only preserves it.
type Accessor struct {
	Name          string          `json:"name,omitempty"`
	BufferView    *int            `json:"bufferView,omitempty"`
	ByteOffset    int             `json:"byteOffset,omitempty"`
	ComponentType ComponentType   `json:"componentType"`
	Normalized    bool            `json:"normalized,omitempty"`
	Count         int             `json:"count"`
	Type          ElementType     `json:"type"`
	Min           []float32       `json:"min,omitempty"`
	Max           []float32       `json:"max,omitempty"`
	Sparse        json.RawMessage `json:"sparse,omitempty"`
	Extensions    json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
}

// Image references picture data by URI (embedded or external) or buffer view.
type Image struct {
	Name       string          `json:"name,omitempty"`
	URI        string          `json:"uri,omitempty"`
	MimeType   string          `json:"mimeType,omitempty"`
	BufferView *int            `json:"bufferView,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Material is a named shading definition. The shading parameters are
// carried as raw JSON so they survive a rewrite untouched.
type Material struct {
	Name                 string          `json:"name,omitempty"`
	AlphaMode            string          `json:"alphaMode,omitempty"`
	AlphaCutoff          *float32        `json:"alphaCutoff,omitempty"`
	DoubleSided          bool            `json:"doubleSided,omitempty"`
	PBRMetallicRoughness json.RawMessage `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        json.RawMessage `json:"normalTexture,omitempty"`
	OcclusionTexture     json.RawMessage `json:"occlusionTexture,omitempty"`
	EmissiveTexture      json.RawMessage `json:"emissiveTexture,omitempty"`
	EmissiveFactor       []float32       `json:"emissiveFactor,omitempty"`
	Extensions           json.RawMessage `json:"extensions,omitempty"`
	Extras               json.RawMessage `json:"extras,omitempty"`
}

// Primitive is one drawable piece of a mesh.
type Primitive struct {
	Attributes map[string]int  `json:"attributes"`
	Indices    *int            `json:"indices,omitempty"`
	Material   *int            `json:"material,omitempty"`
	Mode       *int            `json:"mode,omitempty"`
	Targets    json.RawMessage `json:"targets,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Mesh is a named set of primitives.
type Mesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []Primitive     `json:"primitives"`
	Weights    []float32       `json:"weights,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Node is one element of the scene hierarchy.
type Node struct {
	Name        string          `json:"name,omitempty"`
	Children    []int           `json:"children,omitempty"`
	Mesh        *int            `json:"mesh,omitempty"`
	Skin        *int            `json:"skin,omitempty"`
	Camera      *int            `json:"camera,omitempty"`
	Matrix      []float32       `json:"matrix,omitempty"`
	Translation []float32       `json:"translation,omitempty"`
	Rotation    []float32       `json:"rotation,omitempty"`
	Scale       []float32       `json:"scale,omitempty"`
	Weights     []float32       `json:"weights,omitempty"`
	Extensions  json.RawMessage `json:"extensions,omitempty"`
	Extras      json.RawMessage `json:"extras,omitempty"`
}

// Scene is a named list of root nodes.
type Scene struct {
	Name       string          `json:"name,omitempty"`
	Nodes      []int           `json:"nodes,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Skin binds nodes to joint matrices.
type Skin struct {
	Name                string          `json:"name,omitempty"`
	InverseBindMatrices *int            `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int            `json:"skeleton,omitempty"`
	Joints              []int           `json:"joints"`
	Extensions          json.RawMessage `json:"extensions,omitempty"`
	Extras              json.RawMessage `json:"extras,omitempty"`
}

// ChannelTarget names the node and property an animation channel drives.
type ChannelTarget struct {
	Node       *int            `json:"node,omitempty"`
	Path       string          `json:"path"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// Channel routes a sampler's output to a target property.
type Channel struct {
	Sampler    int             `json:"sampler"`
	Target     ChannelTarget   `json:"target"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`
}

// SamplerEdit is the editable form of a sampler's keyframe data: the
// decoded input and output arrays plus the output element-type tag.
// A non-nil SamplerEdit on a sampler marks it as mid-edit; packing
// consumes and clears it. It round-trips through a namespaced member
// of the sampler's JSON extras object so a document saved mid-edit
// remains valid glTF and foreign extras members survive untouched.
type SamplerEdit struct {
	Input  []float32   `json:"input"`
	Output []float32   `json:"output"`
	Type   ElementType `json:"type"`
}

// editExtrasKey is the extras member the edit state is stored under.
const editExtrasKey = "gltfkit_edit"

// AnimationSampler pairs an input (keyframe time) accessor with an
// output (value) accessor. Input and Output are nil while a sampler is
// being authored and its data does not exist yet.
type AnimationSampler struct {
	Input         *int            `json:"input,omitempty"`
	Interpolation string          `json:"interpolation,omitempty"`
	Output        *int            `json:"output,omitempty"`
	Extensions    json.RawMessage `json:"extensions,omitempty"`
	Extras        json.RawMessage `json:"extras,omitempty"`
	Edit          *SamplerEdit    `json:"-"`
}

// MarshalJSON folds a pending edit state into the extras object under
// its namespaced member, leaving other extras members in place.
func (s AnimationSampler) MarshalJSON() ([]byte, error) {
	type plain AnimationSampler
	p := plain(s)
	if s.Edit != nil {
		extras, err := setExtrasMember(s.Extras, editExtrasKey, s.Edit)
		if err != nil {
			return nil, err
		}
		p.Extras = extras
	}
	return json.Marshal(p)
}

// UnmarshalJSON splits the namespaced edit member, if present, out of
// the extras object. Extras that are not an object, or hold no edit
// member, pass through unchanged.
func (s *AnimationSampler) UnmarshalJSON(data []byte) error {
	type plain AnimationSampler
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = AnimationSampler(p)

	raw, rest := takeExtrasMember(s.Extras, editExtrasKey)
	if raw == nil {
		return nil
	}
	var edit SamplerEdit
	if err := json.Unmarshal(raw, &edit); err != nil {
		return fmt.Errorf("%w: malformed sampler edit state: %v", ErrInvalidDocument, err)
	}
	s.Extras = rest
	s.Edit = &edit
	return nil
}

// setExtrasMember returns extras with the named member set to value.
// Members of an existing extras object are kept. Extras holding a
// non-object value cannot carry members; the value is superseded.
func setExtrasMember(extras json.RawMessage, key string, value interface{}) (json.RawMessage, error) {
	members := map[string]json.RawMessage{}
	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &members); err != nil {
			members = map[string]json.RawMessage{}
		}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	members[key] = raw
	return json.Marshal(members)
}

// takeExtrasMember removes the named member from an extras object and
// returns it along with the remaining extras. A nil member return means
// extras was empty, not an object, or held no such member; extras is
// then returned unchanged.
func takeExtrasMember(extras json.RawMessage, key string) (member, rest json.RawMessage) {
	if len(extras) == 0 {
		return nil, extras
	}
	members := map[string]json.RawMessage{}
	if err := json.Unmarshal(extras, &members); err != nil {
		return nil, extras
	}
	raw, ok := members[key]
	if !ok {
		return nil, extras
	}
	delete(members, key)
	if len(members) == 0 {
		return raw, nil
	}
	rest, err := json.Marshal(members)
	if err != nil {
		return nil, extras
	}
	return raw, rest
}

// Animation is a named set of channels and samplers.
type Animation struct {
	Name       string             `json:"name,omitempty"`
	Channels   []Channel          `json:"channels"`
	Samplers   []AnimationSampler `json:"samplers"`
	Extensions json.RawMessage    `json:"extensions,omitempty"`
	Extras     json.RawMessage    `json:"extras,omitempty"`
}

// Document is the in-memory form of one glTF asset. It is loaded fresh
// from text (or a GLB container) on every invocation and mutated in
// place by the toolkit's operations; callers own serialization.
// Collections the toolkit never transforms (textures, cameras,
// extensions) are carried as raw JSON so they survive a rewrite.
type Document struct {
	Asset              Asset           `json:"asset"`
	Scene              *int            `json:"scene,omitempty"`
	Scenes             []Scene         `json:"scenes,omitempty"`
	Nodes              []Node          `json:"nodes,omitempty"`
	Meshes             []Mesh          `json:"meshes,omitempty"`
	Materials          []Material      `json:"materials,omitempty"`
	Images             []Image         `json:"images,omitempty"`
	Textures           json.RawMessage `json:"textures,omitempty"`
	Samplers           json.RawMessage `json:"samplers,omitempty"`
	Cameras            json.RawMessage `json:"cameras,omitempty"`
	Skins              []Skin          `json:"skins,omitempty"`
	Animations         []Animation     `json:"animations,omitempty"`
	Accessors          []Accessor      `json:"accessors,omitempty"`
	BufferViews        []BufferView    `json:"bufferViews,omitempty"`
	Buffers            []Buffer        `json:"buffers,omitempty"`
	ExtensionsUsed     []string        `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string        `json:"extensionsRequired,omitempty"`
	Extensions         json.RawMessage `json:"extensions,omitempty"`
	Extras             json.RawMessage `json:"extras,omitempty"`

	// dir is the directory external buffer URIs resolve against.
	dir string
	// bin is the GLB BIN chunk when the document came from a container.
	bin []byte
}
