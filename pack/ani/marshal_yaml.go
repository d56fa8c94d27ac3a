package ani

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var _ yaml.Marshaler = (*ANI)(nil)
var _ yaml.Unmarshaler = (*ANI)(nil)

type yamlVec3 [3]float32

func (v yamlVec3) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range v {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(f), 'g', -1, 32),
		})
	}
	return n, nil
}

type yamlFrame struct {
	KeyFrame    int16    `yaml:"keyframe"`
	Translation [3]int16 `yaml:"translation,flow"` // value, in tangent, out tangent
	Rotation    [3]int16 `yaml:"rotation,flow"`
	UnkIndex    int16    `yaml:"unk"`
}

type yamlAnimation struct {
	Format string      `yaml:"format"`
	Unk10  yamlVec3    `yaml:"unk10"`
	Unk20  yamlVec3    `yaml:"unk20"`
	Frames []yamlFrame `yaml:"frames"`
}

type yamlNode struct {
	Name        yaml.Node      `yaml:"name"`
	Type        string         `yaml:"type"`
	GeomIndex   int16          `yaml:"geom"`
	Parent      int16          `yaml:"parent"`
	FirstChild  int16          `yaml:"first_child"`
	NextSibling int16          `yaml:"next_sibling"`
	UnkIndex12  int16          `yaml:"unk12"`
	Translation yamlVec3       `yaml:"translation"`
	Rotation    yamlVec3       `yaml:"rotation"`
	Scale       yamlVec3       `yaml:"scale"`
	Animation   *yamlAnimation `yaml:"animation,omitempty"`
}

type yamlDocument struct {
	KeyFrameCount int32      `yaml:"keyframe_count"` // informational, recomputed on load
	Nodes         []yamlNode `yaml:"nodes"`
	Translations  []yamlVec3 `yaml:"translations"`
	Rotations     []yamlVec3 `yaml:"rotations"`
}

func parseNodeType(s string) (NodeType, error) {
	for _, t := range []NodeType{NODE_TYPE_GEOM, NODE_TYPE_DUMMY} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, errors.Errorf("unknown node type %q", s)
}

func parseFrameFormat(s string) (FrameFormat, error) {
	for _, f := range []FrameFormat{FRAME_FORMAT_POS_ROT_BYTES, FRAME_FORMAT_POS_ROT_SHORTS, FRAME_FORMAT_ROT_SHORTS} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, errors.Errorf("unknown frame format %q", s)
}

func vec3sToYAML(vs []mgl32.Vec3) []yamlVec3 {
	r := make([]yamlVec3, len(vs))
	for i, v := range vs {
		r[i] = yamlVec3(v)
	}
	return r
}

func vec3sFromYAML(vs []yamlVec3) []mgl32.Vec3 {
	r := make([]mgl32.Vec3, len(vs))
	for i, v := range vs {
		r[i] = mgl32.Vec3(v)
	}
	return r
}

// MarshalYAML renders the model for inspection and hand editing.
// Node names carry their index as a line comment.
func (a *ANI) MarshalYAML() (interface{}, error) {
	doc := &yamlDocument{
		KeyFrameCount: a.KeyFrameCount(),
		Nodes:         make([]yamlNode, len(a.Nodes)),
		Translations:  vec3sToYAML(a.Translations),
		Rotations:     vec3sToYAML(a.Rotations),
	}

	for i := range a.Nodes {
		n := &a.Nodes[i]
		yn := &doc.Nodes[i]
		yn.Name = yaml.Node{
			Kind:        yaml.ScalarNode,
			Tag:         "!!str",
			Value:       n.Name,
			LineComment: fmt.Sprintf("node %d", i),
		}
		yn.Type = n.Type.String()
		yn.GeomIndex = n.GeomIndex
		yn.Parent = n.ParentIndex
		yn.FirstChild = n.FirstChildIndex
		yn.NextSibling = n.NextSiblingIndex
		yn.UnkIndex12 = n.UnkIndex12
		yn.Translation = yamlVec3(n.Translation)
		yn.Rotation = yamlVec3(n.Rotation)
		yn.Scale = yamlVec3(n.Scale)

		if na := n.Animation; na != nil {
			ya := &yamlAnimation{
				Format: na.Format.String(),
				Unk10:  yamlVec3(na.Unk10),
				Unk20:  yamlVec3(na.Unk20),
				Frames: make([]yamlFrame, len(na.Frames)),
			}
			for j, f := range na.Frames {
				ya.Frames[j] = yamlFrame{
					KeyFrame:    f.KeyFrame,
					Translation: [3]int16{f.TranslationIndex, f.TranslationInTangentIndex, f.TranslationOutTangentIndex},
					Rotation:    [3]int16{f.RotationIndex, f.RotationInTangentIndex, f.RotationOutTangentIndex},
					UnkIndex:    f.UnkIndex,
				}
			}
			yn.Animation = ya
		}
	}
	return doc, nil
}

func (a *ANI) UnmarshalYAML(value *yaml.Node) error {
	var doc yamlDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}

	result := ANI{
		Nodes:        make([]Node, len(doc.Nodes)),
		Translations: vec3sFromYAML(doc.Translations),
		Rotations:    vec3sFromYAML(doc.Rotations),
	}

	for i := range doc.Nodes {
		yn := &doc.Nodes[i]
		t, err := parseNodeType(yn.Type)
		if err != nil {
			return errors.Wrapf(err, "node %d", i)
		}
		n := Node{
			Name:             yn.Name.Value,
			Type:             t,
			GeomIndex:        yn.GeomIndex,
			ParentIndex:      yn.Parent,
			FirstChildIndex:  yn.FirstChild,
			NextSiblingIndex: yn.NextSibling,
			UnkIndex12:       yn.UnkIndex12,
			Translation:      mgl32.Vec3(yn.Translation),
			Rotation:         mgl32.Vec3(yn.Rotation),
			Scale:            mgl32.Vec3(yn.Scale),
		}

		if ya := yn.Animation; ya != nil {
			format, err := parseFrameFormat(ya.Format)
			if err != nil {
				return errors.Wrapf(err, "node %d %q", i, n.Name)
			}
			na := NewNodeAnimation(format, len(ya.Frames))
			na.Unk10 = mgl32.Vec3(ya.Unk10)
			na.Unk20 = mgl32.Vec3(ya.Unk20)
			for _, yf := range ya.Frames {
				na.Frames = append(na.Frames, Frame{
					KeyFrame:                   yf.KeyFrame,
					TranslationIndex:           yf.Translation[0],
					TranslationInTangentIndex:  yf.Translation[1],
					TranslationOutTangentIndex: yf.Translation[2],
					RotationIndex:              yf.Rotation[0],
					RotationInTangentIndex:     yf.Rotation[1],
					RotationOutTangentIndex:    yf.Rotation[2],
					UnkIndex:                   yf.UnkIndex,
				})
			}
			n.Animation = na
		}
		result.Nodes[i] = n
	}

	*a = result
	return nil
}

func NewFromYAML(b []byte) (*ANI, error) {
	a := new(ANI)
	if err := yaml.Unmarshal(b, a); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal ani yaml")
	}
	return a, nil
}
