package utils

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type fixup struct {
	name   string
	offset int
	value  uint32
	filled bool
}

// BufWriter appends fixed-width values to a growing buffer.
// Values unknown at write time are reserved by name, filled once known,
// and patched into the output in one pass by Bytes.
type BufWriter struct {
	buf    []byte
	order  binary.ByteOrder
	fixups []*fixup
	byName map[string]*fixup
}

func NewBufWriter(order binary.ByteOrder) *BufWriter {
	return &BufWriter{
		buf:    make([]byte, 0, 0x1000),
		order:  order,
		byName: make(map[string]*fixup),
	}
}

func (bw *BufWriter) Pos() int {
	return len(bw.buf)
}

func (bw *BufWriter) WriteBytes(b []byte) {
	bw.buf = append(bw.buf, b...)
}

func (bw *BufWriter) WriteU8(b uint8) {
	bw.buf = append(bw.buf, b)
}

func (bw *BufWriter) WriteU16(v uint16) {
	var b [2]byte
	bw.order.PutUint16(b[:], v)
	bw.buf = append(bw.buf, b[:]...)
}

func (bw *BufWriter) WriteI16(v int16) {
	bw.WriteU16(uint16(v))
}

func (bw *BufWriter) WriteU32(v uint32) {
	var b [4]byte
	bw.order.PutUint32(b[:], v)
	bw.buf = append(bw.buf, b[:]...)
}

func (bw *BufWriter) WriteI32(v int32) {
	bw.WriteU32(uint32(v))
}

func (bw *BufWriter) WriteF(v float32) {
	bw.WriteU32(math.Float32bits(v))
}

func (bw *BufWriter) WriteVec3(v mgl32.Vec3) {
	for _, f := range v {
		bw.WriteF(f)
	}
}

func (bw *BufWriter) WritePattern(amount int, b byte) {
	for i := 0; i < amount; i++ {
		bw.buf = append(bw.buf, b)
	}
}

// Pad appends zero bytes until the position is a multiple of align.
func (bw *BufWriter) Pad(align int) {
	if rem := len(bw.buf) % align; rem != 0 {
		bw.WritePattern(align-rem, 0)
	}
}

// ReserveI32 writes a 4 byte placeholder that must be filled later by FillI32.
func (bw *BufWriter) ReserveI32(name string) {
	if _, exists := bw.byName[name]; exists {
		panic(fmt.Sprintf("fixup %q reserved twice", name))
	}
	f := &fixup{name: name, offset: len(bw.buf)}
	bw.fixups = append(bw.fixups, f)
	bw.byName[name] = f
	bw.WritePattern(4, 0xfe)
}

func (bw *BufWriter) FillI32(name string, v int32) {
	f, ok := bw.byName[name]
	if !ok {
		panic(fmt.Sprintf("fixup %q was never reserved", name))
	}
	if f.filled {
		panic(fmt.Sprintf("fixup %q filled twice", name))
	}
	f.value = uint32(v)
	f.filled = true
}

// Bytes patches every reserved placeholder and returns the output.
// An unfilled reservation is a bug in the caller and panics.
func (bw *BufWriter) Bytes() []byte {
	for _, f := range bw.fixups {
		if !f.filled {
			panic(fmt.Sprintf("fixup %q at 0x%x was never filled", f.name, f.offset))
		}
		bw.order.PutUint32(bw.buf[f.offset:], f.value)
	}
	return bw.buf
}
