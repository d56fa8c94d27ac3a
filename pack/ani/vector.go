package ani

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/ani_codec/utils"
)

// Rotations are stored as three int16 scaled by ROTATION_SCALE,
// so each axis holds roughly +-32.767 with a 0.001 step.
const ROTATION_SCALE = 1000.0

func readVec3Short(bs *utils.BufStack) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i := range v {
		s, err := bs.ReadI16()
		if err != nil {
			return v, err
		}
		v[i] = float32(s) / ROTATION_SCALE
	}
	return v, nil
}

// writeVec3Short truncates toward zero. Components outside the
// int16 range wrap around instead of saturating.
func writeVec3Short(bw *utils.BufWriter, v mgl32.Vec3) {
	for _, f := range v {
		bw.WriteI16(int16(int32(f * ROTATION_SCALE)))
	}
}
