package ani

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/ani_codec/utils"
)

const NODE_ANIMATION_HEADER_SIZE = 0x24

// NodeAnimation is the keyframe track owned by a single Node.
type NodeAnimation struct {
	Format FrameFormat

	// Unk10 and Unk20 are rotations of some kind, usually equal to the owning node rotation.
	Unk10 mgl32.Vec3
	Unk20 mgl32.Vec3

	Frames []Frame
}

func NewNodeAnimation(format FrameFormat, frameCount int) *NodeAnimation {
	return &NodeAnimation{
		Format: format,
		Frames: make([]Frame, 0, frameCount),
	}
}

func readNodeAnimation(bs *utils.BufStack) (*NodeAnimation, error) {
	start := bs.Pos()
	var framesOffset, frameCount, format int32
	na := &NodeAnimation{}

	for _, v := range []*int32{&framesOffset, &frameCount, &format} {
		var err error
		if *v, err = bs.ReadI32(); err != nil {
			return nil, malformed(ERROR_TRUNCATED, start, err)
		}
	}
	na.Format = FrameFormat(format)
	if !na.Format.Valid() {
		return nil, unsupportedFormat(na.Format, start+8)
	}

	var err error
	if na.Unk10, err = bs.ReadVec3(); err != nil {
		return nil, malformed(ERROR_TRUNCATED, start, err)
	}
	if na.Unk20, err = bs.ReadVec3(); err != nil {
		return nil, malformed(ERROR_TRUNCATED, start, err)
	}
	if err := bs.AssertI32(0); err != nil {
		return nil, malformed(ERROR_BAD_RESERVED, start+0x20, err)
	}
	if frameCount < 0 {
		return nil, malformedf(ERROR_TRUNCATED, start+4, "negative frame count %d", frameCount)
	}

	err = bs.StepIn("frames", int(framesOffset), func() error {
		bs.SetName(na.Format.String())
		na.Frames = make([]Frame, frameCount)
		for i := range na.Frames {
			if na.Frames[i], err = readFrame(bs, na.Format); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := KindOf(err); !ok {
			err = malformed(ERROR_TRUNCATED, int(framesOffset), err)
		}
		return nil, err
	}
	return na, nil
}

// write emits the 36 byte header immediately followed by the frames.
func (na *NodeAnimation) write(bw *utils.BufWriter, opts EncodeOptions) error {
	if !na.Format.Valid() {
		return unsupportedFormat(na.Format, bw.Pos()+8)
	}

	bw.WriteI32(int32(bw.Pos() + NODE_ANIMATION_HEADER_SIZE))
	bw.WriteI32(int32(len(na.Frames)))
	bw.WriteI32(int32(na.Format))
	bw.WriteVec3(na.Unk10)
	bw.WriteVec3(na.Unk20)
	bw.WriteI32(0)

	for i := range na.Frames {
		if err := na.Frames[i].write(bw, na.Format, opts.NarrowKeyFrames); err != nil {
			return err
		}
	}
	return nil
}
