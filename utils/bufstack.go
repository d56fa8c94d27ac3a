package utils

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

var (
	ErrOutOfBounds = errors.New("out of buffer bounds")
	ErrAssert      = errors.New("assertion failed")
)

// bufSpan is a region of the buffer visited by a StepIn or a string read.
type bufSpan struct {
	kind   string
	name   string
	offset int
	size   int
	depth  int
}

// BufStack reads fixed-width values from a byte slice with an explicit cursor.
// Out-of-line data is reached with StepIn, which always puts the cursor back.
type BufStack struct {
	buf   []byte
	order binary.ByteOrder
	pos   int
	depth int
	spans []*bufSpan
}

func NewBufStack(b []byte, order binary.ByteOrder) *BufStack {
	return &BufStack{
		buf:   b,
		order: order,
	}
}

func (bs *BufStack) Pos() int {
	return bs.pos
}

func (bs *BufStack) Size() int {
	return len(bs.buf)
}

func (bs *BufStack) Raw() []byte {
	return bs.buf
}

func (bs *BufStack) Seek(offset int) error {
	if offset < 0 || offset > len(bs.buf) {
		return errors.Wrapf(ErrOutOfBounds, "seek to 0x%x (size 0x%x)", offset, len(bs.buf))
	}
	bs.pos = offset
	return nil
}

// StepIn moves the cursor to offset, runs fn and restores the previous
// position on every return path, including failures and panics inside fn.
func (bs *BufStack) StepIn(kind string, offset int, fn func() error) error {
	saved := bs.pos
	if err := bs.Seek(offset); err != nil {
		return errors.Wrapf(err, "step into %s", kind)
	}

	span := &bufSpan{kind: kind, offset: offset, depth: bs.depth}
	bs.spans = append(bs.spans, span)
	bs.depth++
	defer func() {
		if bs.pos > offset {
			span.size = bs.pos - offset
		}
		bs.depth--
		bs.pos = saved
	}()

	return fn()
}

// SetName names the innermost region entered by StepIn.
func (bs *BufStack) SetName(name string) {
	for i := len(bs.spans) - 1; i >= 0; i-- {
		if bs.spans[i].depth == bs.depth-1 {
			bs.spans[i].name = name
			return
		}
	}
}

func (bs *BufStack) Read(amount int) ([]byte, error) {
	if amount < 0 || bs.pos+amount > len(bs.buf) {
		return nil, errors.Wrapf(ErrOutOfBounds, "read 0x%x bytes at 0x%x (size 0x%x)", amount, bs.pos, len(bs.buf))
	}
	oldPos := bs.pos
	bs.pos += amount
	return bs.buf[oldPos:bs.pos], nil
}

func (bs *BufStack) ReadByte() (byte, error) {
	b, err := bs.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (bs *BufStack) ReadU16() (uint16, error) {
	b, err := bs.Read(2)
	if err != nil {
		return 0, err
	}
	return bs.order.Uint16(b), nil
}

func (bs *BufStack) ReadI16() (int16, error) {
	v, err := bs.ReadU16()
	return int16(v), err
}

func (bs *BufStack) ReadU32() (uint32, error) {
	b, err := bs.Read(4)
	if err != nil {
		return 0, err
	}
	return bs.order.Uint32(b), nil
}

func (bs *BufStack) ReadI32() (int32, error) {
	v, err := bs.ReadU32()
	return int32(v), err
}

func (bs *BufStack) ReadF() (float32, error) {
	v, err := bs.ReadU32()
	return math.Float32frombits(v), err
}

func (bs *BufStack) ReadVec3() (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i := range v {
		f, err := bs.ReadF()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// ReadZStringAt decodes the zero terminated string at offset without moving the cursor.
func (bs *BufStack) ReadZStringAt(kind string, offset int) (string, error) {
	if offset < 0 || offset >= len(bs.buf) {
		return "", errors.Wrapf(ErrOutOfBounds, "%s string at 0x%x (size 0x%x)", kind, offset, len(bs.buf))
	}
	l := BytesStringLength(bs.buf[offset:])
	if offset+l == len(bs.buf) {
		return "", errors.Wrapf(ErrOutOfBounds, "%s string at 0x%x is not terminated", kind, offset)
	}

	s := BytesToString(bs.buf[offset : offset+l])
	bs.spans = append(bs.spans, &bufSpan{kind: kind, name: s, offset: offset, size: l + 1, depth: bs.depth})
	return s, nil
}

func (bs *BufStack) AssertByte(expected byte) error {
	pos := bs.pos
	v, err := bs.ReadByte()
	if err != nil {
		return err
	}
	if v != expected {
		return errors.Wrapf(ErrAssert, "byte at 0x%x: expected 0x%x, got 0x%x", pos, expected, v)
	}
	return nil
}

func (bs *BufStack) AssertI16(expected int16) error {
	pos := bs.pos
	v, err := bs.ReadI16()
	if err != nil {
		return err
	}
	if v != expected {
		return errors.Wrapf(ErrAssert, "int16 at 0x%x: expected %d, got %d", pos, expected, v)
	}
	return nil
}

func (bs *BufStack) AssertI32(expected int32) error {
	pos := bs.pos
	v, err := bs.ReadI32()
	if err != nil {
		return err
	}
	if v != expected {
		return errors.Wrapf(ErrAssert, "int32 at 0x%x: expected 0x%x, got 0x%x", pos, expected, v)
	}
	return nil
}

// AssertPattern consumes amount bytes that all must equal b.
func (bs *BufStack) AssertPattern(amount int, b byte) error {
	pos := bs.pos
	data, err := bs.Read(amount)
	if err != nil {
		return err
	}
	for i, v := range data {
		if v != b {
			return errors.Wrapf(ErrAssert, "pattern of 0x%x bytes at 0x%x: byte 0x%x at 0x%x, expected 0x%x",
				amount, pos, v, pos+i, b)
		}
	}
	return nil
}

func (sp *bufSpan) String() string {
	return fmt.Sprintf("buf<%v>(%v)[o:0x%x,s:0x%x,e:0x%x]", sp.kind, sp.name, sp.offset, sp.size, sp.offset+sp.size)
}

// StringTree lists every visited region ordered by offset.
// Unvisited gaps and overlapping regions are reported inline.
func (bs *BufStack) StringTree() string {
	spans := make([]*bufSpan, len(bs.spans))
	copy(spans, bs.spans)
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].offset < spans[j].offset
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "buf[s:0x%x]\n", len(bs.buf))
	pos := 0
	for _, sp := range spans {
		pad := strings.Repeat(".  ", sp.depth+1)
		if sp.offset > pos {
			fmt.Fprintf(&sb, "%sgap [o:0x%x,s:0x%x]\n", pad, pos, sp.offset-pos)
		} else if sp.offset < pos && sp.size != 0 && sp.depth == 0 {
			fmt.Fprintf(&sb, "%s[OVERLAP]\n", pad)
		}
		sb.WriteString(pad + sp.String() + "\n")
		if end := sp.offset + sp.size; end > pos {
			pos = end
		}
	}
	if pos < len(bs.buf) {
		fmt.Fprintf(&sb, ".  gap [o:0x%x,s:0x%x]\n", pos, len(bs.buf)-pos)
	} else if pos > len(bs.buf) {
		sb.WriteString(". [OVERGROW]\n")
	}
	return sb.String()
}
