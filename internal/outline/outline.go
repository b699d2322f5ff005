// Package outline builds a navigable tree summary of a glTF document:
// scenes with their node hierarchies, meshes, materials, animations
// and the accessors behind them.
package outline

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// Item is one entry in the document outline.
type Item struct {
	Label    string
	Children []Item
}

// Build walks the document and returns its outline tree.
func Build(doc *gltf.Document) Item {
	root := Item{Label: "glTF " + doc.Asset.Version}
	if doc.Asset.Generator != "" {
		root.Label += " (" + doc.Asset.Generator + ")"
	}

	if len(doc.Scenes) > 0 {
		scenes := Item{Label: fmt.Sprintf("scenes (%d)", len(doc.Scenes))}
		for i, scene := range doc.Scenes {
			item := Item{Label: labelFor("scene", i, scene.Name)}
			for _, nodeIdx := range scene.Nodes {
				item.Children = append(item.Children, buildNode(doc, nodeIdx, map[int]bool{}))
			}
			scenes.Children = append(scenes.Children, item)
		}
		root.Children = append(root.Children, scenes)
	}

	if len(doc.Meshes) > 0 {
		meshes := Item{Label: fmt.Sprintf("meshes (%d)", len(doc.Meshes))}
		for i, mesh := range doc.Meshes {
			item := Item{Label: labelFor("mesh", i, mesh.Name)}
			for p, prim := range mesh.Primitives {
				attrs := make([]string, 0, len(prim.Attributes))
				for name := range prim.Attributes {
					attrs = append(attrs, name)
				}
				sort.Strings(attrs)
				item.Children = append(item.Children, Item{
					Label: fmt.Sprintf("primitive %d [%s]", p, strings.Join(attrs, " ")),
				})
			}
			meshes.Children = append(meshes.Children, item)
		}
		root.Children = append(root.Children, meshes)
	}

	if len(doc.Materials) > 0 {
		materials := Item{Label: fmt.Sprintf("materials (%d)", len(doc.Materials))}
		for i, mat := range doc.Materials {
			materials.Children = append(materials.Children, Item{Label: labelFor("material", i, mat.Name)})
		}
		root.Children = append(root.Children, materials)
	}

	if len(doc.Animations) > 0 {
		animations := Item{Label: fmt.Sprintf("animations (%d)", len(doc.Animations))}
		for i, anim := range doc.Animations {
			item := Item{Label: labelFor("animation", i, anim.Name)}
			for c, ch := range anim.Channels {
				item.Children = append(item.Children, Item{
					Label: fmt.Sprintf("channel %d -> %s (sampler %d)", c, ch.Target.Path, ch.Sampler),
				})
			}
			for s, sampler := range anim.Samplers {
				label := fmt.Sprintf("sampler %d %s", s, interpOrLinear(sampler.Interpolation))
				if sampler.Edit != nil {
					label += " [editing]"
				}
				item.Children = append(item.Children, Item{Label: label})
			}
			animations.Children = append(animations.Children, item)
		}
		root.Children = append(root.Children, animations)
	}

	if len(doc.Accessors) > 0 {
		accessors := Item{Label: fmt.Sprintf("accessors (%d)", len(doc.Accessors))}
		for i, acc := range doc.Accessors {
			accessors.Children = append(accessors.Children, Item{
				Label: fmt.Sprintf("accessor %d: %d x %s %s", i, acc.Count, acc.Type, acc.ComponentType),
			})
		}
		root.Children = append(root.Children, accessors)
	}

	if len(doc.Buffers) > 0 {
		buffers := Item{Label: fmt.Sprintf("buffers (%d)", len(doc.Buffers))}
		for i, buf := range doc.Buffers {
			buffers.Children = append(buffers.Children, Item{
				Label: fmt.Sprintf("buffer %d: %d bytes (%s)", i, buf.ByteLength, bufferKind(buf)),
			})
		}
		root.Children = append(root.Children, buffers)
	}

	return root
}

// buildNode renders one node and its children, guarding against cycles
// and dangling child indices.
func buildNode(doc *gltf.Document, index int, seen map[int]bool) Item {
	if index < 0 || index >= len(doc.Nodes) {
		return Item{Label: fmt.Sprintf("node %d (dangling reference)", index)}
	}
	if seen[index] {
		return Item{Label: fmt.Sprintf("node %d (cycle)", index)}
	}
	seen[index] = true

	node := doc.Nodes[index]
	item := Item{Label: labelFor("node", index, node.Name)}
	if node.Mesh != nil {
		item.Label += fmt.Sprintf(" [mesh %d]", *node.Mesh)
	}
	if node.Skin != nil {
		item.Label += fmt.Sprintf(" [skin %d]", *node.Skin)
	}
	if node.Camera != nil {
		item.Label += fmt.Sprintf(" [camera %d]", *node.Camera)
	}
	for _, child := range node.Children {
		item.Children = append(item.Children, buildNode(doc, child, seen))
	}
	return item
}

// Render writes the outline as an indented tree.
func Render(w io.Writer, item Item) {
	renderAt(w, item, 0)
}

func renderAt(w io.Writer, item Item, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), item.Label)
	for _, child := range item.Children {
		renderAt(w, child, depth+1)
	}
}

func labelFor(kind string, index int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s %d", kind, index)
	}
	return fmt.Sprintf("%s %d %q", kind, index, name)
}

func bufferKind(buf gltf.Buffer) string {
	switch {
	case buf.URI == "":
		return "BIN chunk"
	case gltf.IsDataURI(buf.URI):
		return "embedded"
	default:
		return buf.URI
	}
}

func interpOrLinear(mode string) string {
	if mode == "" {
		return gltf.InterpolationLinear
	}
	return mode
}
