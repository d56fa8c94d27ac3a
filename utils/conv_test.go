package utils

import (
	"bytes"
	"testing"

	"github.com/mogaika/ani_codec/config"
)

func TestStringToBytesShiftJIS(t *testing.T) {
	if err := config.SetEncoding(config.DefaultEncodingName); err != nil {
		t.Fatal(err)
	}

	const name = "腕_R"
	b, err := StringToBytes(name, true)
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{0x98, 0x72, '_', 'R', 0}
	if !bytes.Equal(b, expected) {
		t.Errorf("StringToBytes(%q)=% x; expected % x", name, b, expected)
	}
	if s := BytesToString(b); s != name {
		t.Errorf("BytesToString(% x)=%q; expected %q", b, s, name)
	}
}

func TestBytesToStringStopsAtZero(t *testing.T) {
	if s := BytesToString([]byte("Hip\x00garbage")); s != "Hip" {
		t.Errorf("BytesToString=%q; expected \"Hip\"", s)
	}
	if l := BytesStringLength([]byte("abc")); l != 3 {
		t.Errorf("BytesStringLength=%d; expected 3", l)
	}
}

func TestStringToBytesReplacesUnsupported(t *testing.T) {
	defer config.SetEncoding(config.DefaultEncodingName)
	if err := config.SetEncoding("ISO 8859-1"); err != nil {
		t.Fatal(err)
	}

	b, err := StringToBytes("a\u4e00", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 2 || b[0] != 'a' {
		t.Errorf("StringToBytes=% x; expected 'a' and a substitute byte", b)
	}
}
