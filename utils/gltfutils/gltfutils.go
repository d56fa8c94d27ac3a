package gltfutils

import (
	"io"

	"github.com/qmuntal/gltf"
)

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// AddRootNode appends nodeId to the default scene.
func AddRootNode(doc *gltf.Document, nodeId uint32) {
	scene := doc.Scenes[0]
	if doc.Scene != nil {
		scene = doc.Scenes[*doc.Scene]
	}
	scene.Nodes = append(scene.Nodes, nodeId)
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

func ExportJSON(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = false
	return encoder.Encode(doc)
}
