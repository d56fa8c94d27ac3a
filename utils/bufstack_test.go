package utils

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestBufStackStepInRestoresPosition(t *testing.T) {
	bs := NewBufStack([]byte{0, 0, 0, 7, 0, 0, 0, 9, 0xff}, binary.BigEndian)
	if _, err := bs.ReadI32(); err != nil {
		t.Fatal(err)
	}

	err := bs.StepIn("value", 4, func() error {
		v, err := bs.ReadI32()
		if v != 9 {
			t.Errorf("ReadI32()=%d; expected 9", v)
		}
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if bs.Pos() != 4 {
		t.Errorf("Pos()=%d after StepIn; expected 4", bs.Pos())
	}

	failure := errors.New("inner failure")
	err = bs.StepIn("failing", 8, func() error {
		bs.ReadByte()
		return failure
	})
	if errors.Cause(err) != failure {
		t.Errorf("StepIn returned %v; expected inner failure", err)
	}
	if bs.Pos() != 4 {
		t.Errorf("Pos()=%d after failed StepIn; expected 4", bs.Pos())
	}

	if err := bs.StepIn("outside", 10, func() error { return nil }); errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("StepIn past the end returned %v; expected ErrOutOfBounds", err)
	}
}

var bufStackReadTests = []struct {
	name string
	buf  []byte
	read func(bs *BufStack) error
	fail error
}{
	{"i16", []byte{0xff, 0xfe}, func(bs *BufStack) error { return bs.AssertI16(-2) }, nil},
	{"i16 short", []byte{0xff}, func(bs *BufStack) error { _, err := bs.ReadI16(); return err }, ErrOutOfBounds},
	{"i32 mismatch", []byte{0, 0, 0, 1}, func(bs *BufStack) error { return bs.AssertI32(0) }, ErrAssert},
	{"byte", []byte{1}, func(bs *BufStack) error { return bs.AssertByte(1) }, nil},
	{"pattern", []byte{0, 0, 0}, func(bs *BufStack) error { return bs.AssertPattern(3, 0) }, nil},
	{"pattern dirty", []byte{0, 1, 0}, func(bs *BufStack) error { return bs.AssertPattern(3, 0) }, ErrAssert},
	{"pattern short", []byte{0, 0}, func(bs *BufStack) error { return bs.AssertPattern(3, 0) }, ErrOutOfBounds},
	{"float", []byte{0x3f, 0x80, 0, 0}, func(bs *BufStack) error {
		f, err := bs.ReadF()
		if err == nil && f != 1 {
			return errors.Errorf("ReadF()=%v", f)
		}
		return err
	}, nil},
}

func TestBufStackReads(t *testing.T) {
	for _, test := range bufStackReadTests {
		err := test.read(NewBufStack(test.buf, binary.BigEndian))
		if errors.Cause(err) != test.fail {
			t.Errorf("%s: got error %v; expected %v", test.name, err, test.fail)
		}
	}
}

func TestBufStackReadZStringAt(t *testing.T) {
	bs := NewBufStack([]byte("\x00\x00root\x00tail"), binary.BigEndian)

	s, err := bs.ReadZStringAt("name", 2)
	if err != nil || s != "root" {
		t.Errorf("ReadZStringAt(2)=%q,%v; expected \"root\"", s, err)
	}
	if bs.Pos() != 0 {
		t.Errorf("ReadZStringAt moved cursor to %d", bs.Pos())
	}
	if s, err := bs.ReadZStringAt("name", 0); err != nil || s != "" {
		t.Errorf("ReadZStringAt(0)=%q,%v; expected empty string", s, err)
	}
	if _, err := bs.ReadZStringAt("name", 7); errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("unterminated string returned %v", err)
	}
	if _, err := bs.ReadZStringAt("name", 100); errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("string past the end returned %v", err)
	}
}

func TestBufStackStringTree(t *testing.T) {
	bs := NewBufStack(make([]byte, 0x20), binary.BigEndian)
	bs.StepIn("block", 0x8, func() error {
		bs.SetName("first")
		_, err := bs.Read(8)
		return err
	})

	tree := bs.StringTree()
	for _, want := range []string{
		"buf[s:0x20]",
		"gap [o:0x0,s:0x8]",
		"buf<block>(first)[o:0x8,s:0x8,e:0x10]",
		"gap [o:0x10,s:0x10]",
	} {
		if !strings.Contains(tree, want) {
			t.Errorf("StringTree() has no %q:\n%s", want, tree)
		}
	}
}
