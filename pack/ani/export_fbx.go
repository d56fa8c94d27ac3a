package ani

import (
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"
	"github.com/pkg/errors"

	"github.com/mogaika/ani_codec/utils"
	"github.com/mogaika/ani_codec/utils/fbxbuilder"
)

type FbxExporterNode struct {
	FbxModelId int64
	FbxModel   *fbx.Node
}

type FbxExporter struct {
	FbxModelId int64
	Nodes      []FbxExporterNode
}

// ExportFbx adds a skeleton LimbNode model per node under a single Null model.
func (a *ANI) ExportFbx(name string, f *fbxbuilder.FBXBuilder) (*FbxExporter, error) {
	if err := a.CheckTree(); err != nil {
		return nil, errors.Wrapf(err, "Can't export node tree")
	}

	fe := &FbxExporter{
		FbxModelId: f.GenerateId(),
		Nodes:      make([]FbxExporterNode, len(a.Nodes)),
	}

	model := bfbx73.Model(fe.FbxModelId, name+"\x00\x01Model", "Null").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70(),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)
	f.AddObjects(model)

	for i := range a.Nodes {
		n := &a.Nodes[i]
		en := &fe.Nodes[i]
		en.FbxModelId = f.GenerateId()

		rotation := utils.RadiansToDegreeV3(n.Rotation)
		en.FbxModel = bfbx73.Model(en.FbxModelId, n.Name+"\x00\x01Model", "LimbNode").AddNodes(
			bfbx73.Version(232),
			bfbx73.Properties70().AddNodes(
				bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+",
					float64(n.Translation[0]), float64(n.Translation[1]), float64(n.Translation[2])),
				bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A+",
					float64(rotation[0]), float64(rotation[1]), float64(rotation[2])),
				bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A+",
					float64(n.Scale[0]), float64(n.Scale[1]), float64(n.Scale[2])),
			),
			bfbx73.Shading(true),
			bfbx73.Culling("CullingOff"),
		)

		nodeAttribute := bfbx73.NodeAttribute(f.GenerateId(), n.Name+"\x00\x01NodeAttribute", "LimbNode").AddNodes(
			bfbx73.TypeFlags("Skeleton"),
		)

		f.AddObjects(en.FbxModel, nodeAttribute)
		f.AddConnections(bfbx73.C("OO", nodeAttribute.Properties[0].(int64), en.FbxModelId))
	}

	for i := range a.Nodes {
		parentId := fe.FbxModelId
		if parent := a.Nodes[i].ParentIndex; parent != NODE_NONE {
			parentId = fe.Nodes[parent].FbxModelId
		}
		f.AddConnections(bfbx73.C("OO", fe.Nodes[i].FbxModelId, parentId))
	}

	return fe, nil
}

func (a *ANI) ExportFbxDefault(name string) (*fbxbuilder.FBXBuilder, error) {
	f := fbxbuilder.NewFBXBuilder(name)

	fe, err := a.ExportFbx(name, f)
	if err != nil {
		return nil, err
	}
	f.AddConnections(bfbx73.C("OO", fe.FbxModelId, 0))

	return f, nil
}
