package ani

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/ani_codec/pack"
	"github.com/mogaika/ani_codec/utils"
)

const ANI_MAGIC = 0x20051014
const HEADER_SIZE = 0x78
const MIN_FILE_SIZE = 0x40

// ANI is an Armored Core for Answer skeleton animation: a flat node
// hierarchy plus the translation and rotation buffers its frames index into.
type ANI struct {
	Nodes        []Node
	Translations []mgl32.Vec3
	Rotations    []mgl32.Vec3 // quantized to 0.001 on disk
}

type EncodeOptions struct {
	// NarrowKeyFrames writes frame keyframes as int16, the width they are
	// read with. By default they are written as int32 like existing files,
	// which do not decode back to the same frames.
	NarrowKeyFrames bool
}

type header struct {
	frameCount         int32
	nodesOffset        int32
	nodeCount          int32
	translationsOffset int32
	rotationsOffset    int32
	translationCount   int32
	rotationCount      int32
	dataSize           int32
}

// Is reports whether b looks like an ANI file. Only the signature is checked.
func Is(b []byte) bool {
	if len(b) < MIN_FILE_SIZE {
		return false
	}
	return binary.BigEndian.Uint32(b) == ANI_MAGIC
}

func NewFromData(b []byte) (*ANI, error) {
	return Decode(b, nil)
}

// Decode parses b, tracing offsets into l when it is not nil.
// It stops at the first violation and never returns a partial ANI.
func Decode(b []byte, l *utils.Logger) (*ANI, error) {
	a, _, err := decode(b, l)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func decode(b []byte, l *utils.Logger) (*ANI, *utils.BufStack, error) {
	bs := utils.NewBufStack(b, binary.BigEndian)
	var h header

	if err := bs.StepIn("header", 0, func() error { return readHeader(bs, &h) }); err != nil {
		return nil, bs, err
	}
	l.Printf("header: frames %d, nodes %d at 0x%x, translations %d at 0x%x, rotations %d at 0x%x, data size 0x%x",
		h.frameCount, h.nodeCount, h.nodesOffset, h.translationCount, h.translationsOffset,
		h.rotationCount, h.rotationsOffset, h.dataSize)

	for _, c := range []struct {
		name  string
		count int32
		at    int
	}{
		{"nodes", h.nodeCount, 0x10},
		{"translations", h.translationCount, 0x1c},
		{"rotations", h.rotationCount, 0x20},
	} {
		if c.count < 0 {
			return nil, bs, malformedf(ERROR_TRUNCATED, c.at, "negative %s count %d", c.name, c.count)
		}
	}

	a := &ANI{
		Translations: make([]mgl32.Vec3, h.translationCount),
		Rotations:    make([]mgl32.Vec3, h.rotationCount),
		Nodes:        make([]Node, h.nodeCount),
	}

	err := bs.StepIn("translations", int(h.translationsOffset), func() error {
		for i := range a.Translations {
			var err error
			if a.Translations[i], err = bs.ReadVec3(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, bs, asMalformed(err, int(h.translationsOffset))
	}

	err = bs.StepIn("rotations", int(h.rotationsOffset), func() error {
		for i := range a.Rotations {
			var err error
			if a.Rotations[i], err = readVec3Short(bs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, bs, asMalformed(err, int(h.rotationsOffset))
	}

	err = bs.StepIn("nodes", int(h.nodesOffset), func() error {
		for i := range a.Nodes {
			var err error
			if a.Nodes[i], err = readNode(bs, i, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, bs, asMalformed(err, int(h.nodesOffset))
	}

	return a, bs, nil
}

func asMalformed(err error, offset int) error {
	if _, ok := KindOf(err); ok {
		return err
	}
	return malformed(ERROR_TRUNCATED, offset, err)
}

func readHeader(bs *utils.BufStack, h *header) error {
	if bs.Size() < 4 {
		return malformedf(ERROR_TRUNCATED, 0, "file size 0x%x is smaller than signature", bs.Size())
	}
	if err := bs.AssertI32(ANI_MAGIC); err != nil {
		return malformed(ERROR_BAD_SIGNATURE, 0, err)
	}
	if bs.Size() < HEADER_SIZE {
		return malformedf(ERROR_TRUNCATED, 0, "file size 0x%x is smaller than header", bs.Size())
	}
	if err := bs.AssertI32(0); err != nil {
		return malformed(ERROR_BAD_RESERVED, 4, err)
	}

	// frame count is recomputed on write
	for _, v := range []*int32{
		&h.frameCount, &h.nodesOffset, &h.nodeCount,
		&h.translationsOffset, &h.rotationsOffset,
		&h.translationCount, &h.rotationCount, &h.dataSize,
	} {
		var err error
		if *v, err = bs.ReadI32(); err != nil {
			return malformed(ERROR_TRUNCATED, bs.Pos(), err)
		}
	}

	if int(h.dataSize) > bs.Size() {
		return malformedf(ERROR_DATA_SIZE, 0x24, "data size 0x%x is greater than stream size 0x%x", h.dataSize, bs.Size())
	}
	if int(h.dataSize) < bs.Size() {
		if h.dataSize < 0 {
			return malformedf(ERROR_DATA_SIZE, 0x24, "negative data size %d", h.dataSize)
		}
		err := bs.StepIn("trailer", int(h.dataSize), func() error {
			return bs.AssertPattern(bs.Size()-int(h.dataSize), 0)
		})
		if err != nil {
			return malformed(ERROR_NON_ZERO_PADDING, int(h.dataSize), err)
		}
	}

	if err := bs.AssertI32(0); err != nil {
		return malformed(ERROR_BAD_RESERVED, 0x28, err)
	}
	if err := bs.AssertI32(1); err != nil {
		return malformed(ERROR_BAD_RESERVED, 0x2c, err)
	}
	if err := bs.AssertByte(1); err != nil {
		return malformed(ERROR_BAD_RESERVED, 0x30, err)
	}
	if err := bs.AssertByte(1); err != nil {
		return malformed(ERROR_BAD_RESERVED, 0x31, err)
	}
	if err := bs.AssertPattern(70, 0); err != nil {
		return malformed(ERROR_NON_ZERO_PADDING, 0x32, err)
	}
	return nil
}

// KeyFrameCount is the greatest keyframe of all node animations, 0 without animations.
func (a *ANI) KeyFrameCount() int32 {
	var value int32
	for i := range a.Nodes {
		if na := a.Nodes[i].Animation; na != nil {
			for _, frame := range na.Frames {
				if int32(frame.KeyFrame) > value {
					value = int32(frame.KeyFrame)
				}
			}
		}
	}
	return value
}

func (a *ANI) Marshal() ([]byte, error) {
	return a.MarshalWithOptions(EncodeOptions{})
}

// MarshalWithOptions writes fixed size records first with placeholder
// offsets, then the data they point to, then patches the placeholders.
func (a *ANI) MarshalWithOptions(opts EncodeOptions) ([]byte, error) {
	bw := utils.NewBufWriter(binary.BigEndian)

	bw.WriteU32(ANI_MAGIC)
	bw.WriteI32(0)
	bw.WriteI32(a.KeyFrameCount())
	bw.WriteI32(HEADER_SIZE) // nodes offset
	bw.WriteI32(int32(len(a.Nodes)))
	bw.ReserveI32("TranslationsOffset")
	bw.ReserveI32("RotationsOffset")
	bw.WriteI32(int32(len(a.Translations)))
	bw.WriteI32(int32(len(a.Rotations)))
	bw.ReserveI32("DataSize")
	bw.WriteI32(0)
	bw.WriteI32(1)
	bw.WriteU8(1)
	bw.WriteU8(1)
	bw.WritePattern(70, 0)

	for i := range a.Nodes {
		a.Nodes[i].write(bw, i)
	}
	for i := range a.Nodes {
		if err := a.Nodes[i].writeData(bw, i, opts); err != nil {
			return nil, err
		}
	}

	bw.FillI32("TranslationsOffset", int32(bw.Pos()))
	for _, t := range a.Translations {
		bw.WriteVec3(t)
	}
	bw.FillI32("RotationsOffset", int32(bw.Pos()))
	for _, r := range a.Rotations {
		writeVec3Short(bw, r)
	}

	bw.Pad(4)
	bw.FillI32("DataSize", int32(bw.Pos()))
	bw.Pad(16)

	return bw.Bytes(), nil
}

func init() {
	pack.SetHandler(".ANI", Is, func(b []byte) (interface{}, error) {
		return NewFromData(b)
	})
}
