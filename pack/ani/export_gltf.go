package ani

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/ani_codec/utils"
	"github.com/mogaika/ani_codec/utils/gltfutils"
)

type GLTFAniExported struct {
	// NodeIds maps node index to its gltf node
	NodeIds []uint32
}

// ExportGLTF appends one gltf node per ANI node with its local transform
// and links them following the parent indices. Node rotations are euler
// angles in radians. Animation tracks are not exported.
func (a *ANI) ExportGLTF(doc *gltf.Document) (*GLTFAniExported, error) {
	if err := a.CheckTree(); err != nil {
		return nil, errors.Wrapf(err, "Can't export node tree")
	}

	gae := &GLTFAniExported{
		NodeIds: make([]uint32, len(a.Nodes)),
	}

	for i := range a.Nodes {
		n := &a.Nodes[i]
		rotation := utils.EulerToQuat(n.Rotation)

		extras := map[string]interface{}{
			"type": n.Type.String(),
		}
		if n.GeomIndex != NODE_NONE {
			extras["geom"] = n.GeomIndex
		}
		if n.Animation != nil {
			extras["frames"] = len(n.Animation.Frames)
		}

		gae.NodeIds[i] = uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        n.Name,
			Translation: n.Translation,
			Rotation:    rotation.V.Vec4(rotation.W),
			Scale:       n.Scale,
			Extras:      extras,
		})
	}

	for i := range a.Nodes {
		if parent := a.Nodes[i].ParentIndex; parent == NODE_NONE {
			gltfutils.AddRootNode(doc, gae.NodeIds[i])
		} else {
			parentNode := doc.Nodes[gae.NodeIds[parent]]
			parentNode.Children = append(parentNode.Children, gae.NodeIds[i])
		}
	}

	return gae, nil
}

func (a *ANI) ExportGLTFDefault() (*gltf.Document, error) {
	doc := gltfutils.NewDocument()
	if _, err := a.ExportGLTF(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
