package ani

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/ani_codec/utils"
)

const NODE_SIZE = 0xf4

const NODE_NONE = -1

type NodeType int32

const (
	NODE_TYPE_GEOM  NodeType = 1 // geometry is attached to the node
	NODE_TYPE_DUMMY NodeType = 2 // connects geometry nodes
)

func (t NodeType) String() string {
	switch t {
	case NODE_TYPE_GEOM:
		return "Geom"
	case NODE_TYPE_DUMMY:
		return "Dummy"
	default:
		return fmt.Sprintf("NodeType(%d)", int32(t))
	}
}

func (t NodeType) Valid() bool {
	return t == NODE_TYPE_GEOM || t == NODE_TYPE_DUMMY
}

// Node is one joint of the skeleton. Parent, child and sibling links are
// positions in ANI.Nodes, NODE_NONE when absent.
type Node struct {
	Name string
	Type NodeType

	GeomIndex        int16
	ParentIndex      int16
	FirstChildIndex  int16
	NextSiblingIndex int16
	UnkIndex12       int16 // always -1 in known files

	Translation mgl32.Vec3
	Rotation    mgl32.Vec3
	Scale       mgl32.Vec3

	// nil when the node is not animated
	Animation *NodeAnimation
}

func NewNode(name string) Node {
	return Node{
		Name:             name,
		Type:             NODE_TYPE_GEOM,
		GeomIndex:        NODE_NONE,
		ParentIndex:      NODE_NONE,
		FirstChildIndex:  NODE_NONE,
		NextSiblingIndex: NODE_NONE,
		UnkIndex12:       NODE_NONE,
		Scale:            mgl32.Vec3{1, 1, 1},
	}
}

func readNode(bs *utils.BufStack, index int, l *utils.Logger) (Node, error) {
	var n Node
	start := bs.Pos()
	truncated := func(err error) (Node, error) {
		return n, malformed(ERROR_TRUNCATED, start, err)
	}

	nameOffset, err := bs.ReadI32()
	if err != nil {
		return truncated(err)
	}
	if nameOffset < 1 {
		return n, malformedf(ERROR_MISSING_NAME, start, "node %d name offset %d", index, nameOffset)
	}
	if n.Name, err = bs.ReadZStringAt("name", int(nameOffset)); err != nil {
		return n, malformed(ERROR_MISSING_NAME, start, err)
	}

	rawType, err := bs.ReadI32()
	if err != nil {
		return truncated(err)
	}
	if n.Type = NodeType(rawType); !n.Type.Valid() {
		return n, malformedf(ERROR_BAD_NODE_TYPE, start+4, "node %d %q type %d", index, n.Name, rawType)
	}

	if err := bs.AssertI16(int16(index)); err != nil {
		return n, malformed(ERROR_NODE_INDEX_MISMATCH, start+8, err)
	}

	for _, v := range []*int16{&n.GeomIndex, &n.ParentIndex, &n.FirstChildIndex, &n.NextSiblingIndex, &n.UnkIndex12} {
		if *v, err = bs.ReadI16(); err != nil {
			return truncated(err)
		}
	}
	for _, v := range []*mgl32.Vec3{&n.Translation, &n.Rotation, &n.Scale} {
		if *v, err = bs.ReadVec3(); err != nil {
			return truncated(err)
		}
	}

	animationOffset, err := bs.ReadI32()
	if err != nil {
		return truncated(err)
	}
	if err := bs.AssertPattern(4, 0); err != nil {
		return n, malformed(ERROR_NON_ZERO_PADDING, bs.Pos(), err)
	}
	// offset to data of unknown purpose, not modeled and written back as zero
	unkOffset, err := bs.ReadU32()
	if err != nil {
		return truncated(err)
	}
	if unkOffset != 0 {
		l.Printf("node %d %q: unmodeled offset 0x%x ignored", index, n.Name, unkOffset)
	}
	if err := bs.AssertPattern(176, 0); err != nil {
		return n, malformed(ERROR_NON_ZERO_PADDING, bs.Pos(), err)
	}

	if animationOffset > 0 {
		err := bs.StepIn("animation", int(animationOffset), func() error {
			bs.SetName(n.Name)
			na, err := readNodeAnimation(bs)
			n.Animation = na
			return err
		})
		if err != nil {
			if _, ok := KindOf(err); !ok {
				err = malformed(ERROR_TRUNCATED, int(animationOffset), err)
			}
			return n, err
		}
		l.Printf("node %d %q: %v animation with %d frames at 0x%x",
			index, n.Name, n.Animation.Format, len(n.Animation.Frames), animationOffset)
	}

	return n, nil
}

// write emits the fixed size record, reserving the name and animation offsets.
func (n *Node) write(bw *utils.BufWriter, index int) {
	bw.ReserveI32(nodeNameFixup(index))
	bw.WriteI32(int32(n.Type))
	bw.WriteI16(int16(index))
	bw.WriteI16(n.GeomIndex)
	bw.WriteI16(n.ParentIndex)
	bw.WriteI16(n.FirstChildIndex)
	bw.WriteI16(n.NextSiblingIndex)
	bw.WriteI16(n.UnkIndex12)
	bw.WriteVec3(n.Translation)
	bw.WriteVec3(n.Rotation)
	bw.WriteVec3(n.Scale)
	if n.Animation != nil {
		bw.ReserveI32(nodeAnimationFixup(index))
	} else {
		bw.WriteI32(0)
	}
	// padding, unmodeled offset, padding
	bw.WritePattern(4+4+176, 0)
}

// writeData emits the name and animation referenced by the record of node index.
func (n *Node) writeData(bw *utils.BufWriter, index int, opts EncodeOptions) error {
	bw.FillI32(nodeNameFixup(index), int32(bw.Pos()))
	name, err := utils.StringToBytes(n.Name, true)
	if err != nil {
		return err
	}
	bw.WriteBytes(name)

	if n.Animation != nil {
		bw.FillI32(nodeAnimationFixup(index), int32(bw.Pos()))
		if err := n.Animation.write(bw, opts); err != nil {
			return err
		}
	}
	return nil
}

func nodeNameFixup(index int) string {
	return fmt.Sprintf("NodeNameOffset_%d", index)
}

func nodeAnimationFixup(index int) string {
	return fmt.Sprintf("AnimationOffset_%d", index)
}
