package utils

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBufWriterFixups(t *testing.T) {
	bw := NewBufWriter(binary.BigEndian)
	bw.WriteU16(0x0102)
	bw.ReserveI32("Offset")
	bw.WriteU8(0xaa)
	bw.FillI32("Offset", int32(bw.Pos()))
	bw.Pad(4)

	expected := []byte{1, 2, 0, 0, 0, 7, 0xaa, 0}
	if got := bw.Bytes(); !bytes.Equal(got, expected) {
		t.Errorf("Bytes()=% x; expected % x", got, expected)
	}
}

func TestBufWriterPad(t *testing.T) {
	for _, test := range []struct {
		written, align, size int
	}{
		{0, 16, 0},
		{1, 4, 4},
		{4, 4, 4},
		{17, 16, 32},
	} {
		bw := NewBufWriter(binary.LittleEndian)
		bw.WritePattern(test.written, 1)
		bw.Pad(test.align)
		if bw.Pos() != test.size {
			t.Errorf("Pad(%d) after %d bytes: size %d; expected %d", test.align, test.written, bw.Pos(), test.size)
		}
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestBufWriterMisuse(t *testing.T) {
	expectPanic(t, "unfilled fixup", func() {
		bw := NewBufWriter(binary.BigEndian)
		bw.ReserveI32("DataSize")
		bw.Bytes()
	})
	expectPanic(t, "double reserve", func() {
		bw := NewBufWriter(binary.BigEndian)
		bw.ReserveI32("DataSize")
		bw.ReserveI32("DataSize")
	})
	expectPanic(t, "unknown fill", func() {
		NewBufWriter(binary.BigEndian).FillI32("DataSize", 0)
	})
	expectPanic(t, "double fill", func() {
		bw := NewBufWriter(binary.BigEndian)
		bw.ReserveI32("DataSize")
		bw.FillI32("DataSize", 1)
		bw.FillI32("DataSize", 2)
	})
}
