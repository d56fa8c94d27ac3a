package utils

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/mogaika/ani_codec/config"
)

// BytesToString decodes bs up to the first zero byte using the configured encoding.
// Invalid sequences are replaced, so decoding never fails.
func BytesToString(bs []byte) string {
	s, _, err := transform.Bytes(config.GetEncoding().NewDecoder(), bs[:BytesStringLength(bs)])
	if err != nil {
		// decoders substitute U+FFFD instead of failing
		panic(err)
	}
	return string(s)
}

func BytesStringLength(bs []byte) int {
	if l := bytes.IndexByte(bs, 0); l == -1 {
		return len(bs)
	} else {
		return l
	}
}

// StringToBytes encodes s using the configured encoding.
// Runes the encoding cannot represent are replaced by its substitution character.
func StringToBytes(s string, nilTerminate bool) ([]byte, error) {
	bs, _, err := transform.Bytes(encoding.ReplaceUnsupported(config.GetEncoding().NewEncoder()), []byte(s))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to encode %q as %s", s, config.GetEncodingName())
	}
	if nilTerminate {
		bs = append(bs, 0)
	}
	return bs, nil
}
