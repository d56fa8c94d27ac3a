package ani

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/mogaika/ani_codec/utils/gltfutils"
)

func TestExportGLTF(t *testing.T) {
	a := newTestANI()
	doc, err := a.ExportGLTFDefault()
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Nodes) != len(a.Nodes) {
		t.Fatalf("exported %d nodes; expected %d", len(doc.Nodes), len(a.Nodes))
	}
	if roots := doc.Scenes[0].Nodes; !reflect.DeepEqual(roots, []uint32{0}) {
		t.Errorf("scene roots %v", roots)
	}
	if c := doc.Nodes[0].Children; !reflect.DeepEqual(c, []uint32{1, 2}) {
		t.Errorf("root children %v", c)
	}
	if c := doc.Nodes[2].Children; !reflect.DeepEqual(c, []uint32{3}) {
		t.Errorf("node 2 children %v", c)
	}
	if n := doc.Nodes[3]; n.Name != "腕_R" {
		t.Errorf("node 3 name %q", n.Name)
	}
	if r := doc.Nodes[0].Rotation; r != [4]float32{0, 0, 0, 1} {
		t.Errorf("identity rotation exported as %v", r)
	}
	if s := doc.Nodes[2].Scale; s != [3]float32{1, 0.5, 2} {
		t.Errorf("scale exported as %v", s)
	}

	var out bytes.Buffer
	if err := gltfutils.ExportBinary(&out, doc); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("glTF")) {
		t.Errorf("binary export has no glb magic")
	}
}

func TestExportRejectsBrokenTree(t *testing.T) {
	a := newTestANI()
	a.Nodes[1].ParentIndex = 1

	if _, err := a.ExportGLTFDefault(); err == nil {
		t.Errorf("glTF export accepted self parent")
	}
	if _, err := a.ExportFbxDefault("broken.fbx"); err == nil {
		t.Errorf("fbx export accepted self parent")
	}
}

func TestExportFbx(t *testing.T) {
	a := newTestANI()
	f, err := a.ExportFbxDefault("skeleton.fbx")
	if err != nil {
		t.Fatal(err)
	}

	models, attributes := 0, 0
	for _, o := range f.Objects() {
		switch o.Name {
		case "Model":
			models++
		case "NodeAttribute":
			attributes++
		}
	}
	if models != len(a.Nodes)+1 || attributes != len(a.Nodes) {
		t.Errorf("exported %d models and %d attributes", models, attributes)
	}
	// attribute links, parent links and the scene root link
	if c := len(f.Connections()); c != 2*len(a.Nodes)+1 {
		t.Errorf("exported %d connections", c)
	}

	var out bytes.Buffer
	if err := f.Write(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Errorf("fbx export is empty")
	}
}
