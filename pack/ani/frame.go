package ani

import (
	"encoding/binary"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/ani_codec/utils"
)

// FrameFormat selects the on-disk shape of every Frame of a NodeAnimation.
type FrameFormat int32

const (
	FRAME_FORMAT_POS_ROT_BYTES  FrameFormat = 1 // translation and rotation indices as bytes
	FRAME_FORMAT_POS_ROT_SHORTS FrameFormat = 2 // translation, rotation and unknown indices as shorts
	FRAME_FORMAT_ROT_SHORTS     FrameFormat = 4 // rotation indices only, as shorts
)

func (f FrameFormat) String() string {
	switch f {
	case FRAME_FORMAT_POS_ROT_BYTES:
		return "PosRotBytes"
	case FRAME_FORMAT_POS_ROT_SHORTS:
		return "PosRotShorts"
	case FRAME_FORMAT_ROT_SHORTS:
		return "RotShorts"
	default:
		return fmt.Sprintf("FrameFormat(%d)", int32(f))
	}
}

func (f FrameFormat) Valid() bool {
	switch f {
	case FRAME_FORMAT_POS_ROT_BYTES, FRAME_FORMAT_POS_ROT_SHORTS, FRAME_FORMAT_ROT_SHORTS:
		return true
	}
	return false
}

// RecordSize is the size of one frame as it is read, keyframe included.
func (f FrameFormat) RecordSize() int {
	switch f {
	case FRAME_FORMAT_POS_ROT_BYTES:
		return 2 + 6
	case FRAME_FORMAT_POS_ROT_SHORTS:
		return 2 + 7*2
	case FRAME_FORMAT_ROT_SHORTS:
		return 2 + 3*2
	}
	return 0
}

// Frame is one keyframe of a node track. Indices point into the
// translation and rotation buffers of the owning ANI.
type Frame struct {
	KeyFrame int16

	TranslationIndex           int16
	TranslationInTangentIndex  int16
	TranslationOutTangentIndex int16

	RotationIndex           int16
	RotationInTangentIndex  int16
	RotationOutTangentIndex int16

	UnkIndex int16 // scale index probably
}

func unsupportedFormat(format FrameFormat, offset int) error {
	return malformedf(ERROR_UNSUPPORTED_FRAME_FORMAT, offset, "frame format %v has not been implemented", format)
}

func readFrame(bs *utils.BufStack, format FrameFormat) (Frame, error) {
	var f Frame
	start := bs.Pos()

	if !format.Valid() {
		return f, unsupportedFormat(format, start)
	}
	raw, err := bs.Read(format.RecordSize())
	if err != nil {
		return f, malformed(ERROR_TRUNCATED, start, err)
	}

	f.KeyFrame = int16(binary.BigEndian.Uint16(raw))
	body := raw[2:]
	short := func(i int) int16 {
		return int16(binary.BigEndian.Uint16(body[i*2:]))
	}

	switch format {
	case FRAME_FORMAT_POS_ROT_BYTES:
		// unsigned on disk: -1 is not representable and reads back as 255
		f.TranslationIndex = int16(body[0])
		f.TranslationInTangentIndex = int16(body[1])
		f.TranslationOutTangentIndex = int16(body[2])
		f.RotationIndex = int16(body[3])
		f.RotationInTangentIndex = int16(body[4])
		f.RotationOutTangentIndex = int16(body[5])
		f.UnkIndex = 1
	case FRAME_FORMAT_POS_ROT_SHORTS:
		f.TranslationIndex = short(0)
		f.TranslationInTangentIndex = short(1)
		f.TranslationOutTangentIndex = short(2)
		f.RotationIndex = short(3)
		f.RotationInTangentIndex = short(4)
		f.RotationOutTangentIndex = short(5)
		f.UnkIndex = short(6)
	case FRAME_FORMAT_ROT_SHORTS:
		f.TranslationIndex = -1
		f.TranslationInTangentIndex = -1
		f.TranslationOutTangentIndex = -1
		f.RotationIndex = short(0)
		f.RotationInTangentIndex = short(1)
		f.RotationOutTangentIndex = short(2)
		f.UnkIndex = 1
	}
	return f, nil
}

// write emits the keyframe as int32 unless narrowKeyFrame is set,
// while readFrame always reads it as int16. Existing files are written this way.
func (f *Frame) write(bw *utils.BufWriter, format FrameFormat, narrowKeyFrame bool) error {
	if !format.Valid() {
		return unsupportedFormat(format, bw.Pos())
	}

	if narrowKeyFrame {
		bw.WriteI16(f.KeyFrame)
	} else {
		bw.WriteI32(int32(f.KeyFrame))
	}

	switch format {
	case FRAME_FORMAT_POS_ROT_BYTES:
		// values outside 0..255 are truncated to their low byte
		bw.WriteU8(uint8(f.TranslationIndex))
		bw.WriteU8(uint8(f.TranslationInTangentIndex))
		bw.WriteU8(uint8(f.TranslationOutTangentIndex))
		bw.WriteU8(uint8(f.RotationIndex))
		bw.WriteU8(uint8(f.RotationInTangentIndex))
		bw.WriteU8(uint8(f.RotationOutTangentIndex))
	case FRAME_FORMAT_POS_ROT_SHORTS:
		bw.WriteI16(f.TranslationIndex)
		bw.WriteI16(f.TranslationInTangentIndex)
		bw.WriteI16(f.TranslationOutTangentIndex)
		bw.WriteI16(f.RotationIndex)
		bw.WriteI16(f.RotationInTangentIndex)
		bw.WriteI16(f.RotationOutTangentIndex)
		bw.WriteI16(f.UnkIndex)
	case FRAME_FORMAT_ROT_SHORTS:
		bw.WriteI16(f.RotationIndex)
		bw.WriteI16(f.RotationInTangentIndex)
		bw.WriteI16(f.RotationOutTangentIndex)
	}
	return nil
}

// Accessors below index the shared buffers directly and panic on an out of range index.

func (f *Frame) GetTranslation(translations []mgl32.Vec3) mgl32.Vec3 {
	return translations[f.TranslationIndex]
}

func (f *Frame) GetTranslationInTangent(translations []mgl32.Vec3) mgl32.Vec3 {
	return translations[f.TranslationInTangentIndex]
}

func (f *Frame) GetTranslationOutTangent(translations []mgl32.Vec3) mgl32.Vec3 {
	return translations[f.TranslationOutTangentIndex]
}

func (f *Frame) GetRotation(rotations []mgl32.Vec3) mgl32.Vec3 {
	return rotations[f.RotationIndex]
}

func (f *Frame) GetRotationInTangent(rotations []mgl32.Vec3) mgl32.Vec3 {
	return rotations[f.RotationInTangentIndex]
}

func (f *Frame) GetRotationOutTangent(rotations []mgl32.Vec3) mgl32.Vec3 {
	return rotations[f.RotationOutTangentIndex]
}
