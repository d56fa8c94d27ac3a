package config

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

const DefaultEncodingName = "Shift JIS"

var japaneseEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{DefaultEncodingName, japanese.ShiftJIS},
	{"EUC-JP", japanese.EUCJP},
	{"ISO-2022-JP", japanese.ISO2022JP},
}

var currentEncodingName = DefaultEncodingName
var currentEncoding encoding.Encoding = japanese.ShiftJIS

// SetEncoding selects the encoding used for strings stored inside asset files.
// Japanese encodings and every single-byte charmap known to x/text are accepted.
func SetEncoding(name string) error {
	for _, je := range japaneseEncodings {
		if je.name == name {
			currentEncodingName, currentEncoding = je.name, je.enc
			return nil
		}
	}
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if cm.String() == name {
				currentEncodingName, currentEncoding = name, cm
				return nil
			}
		}
	}
	return errors.Errorf("Failed to find encoding %q", name)
}

func ListEncodings() []string {
	list := make([]string, 0, len(japaneseEncodings)+len(charmap.All))
	for _, je := range japaneseEncodings {
		list = append(list, je.name)
	}
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			list = append(list, cm.String())
		}
	}
	return list
}

func GetEncoding() encoding.Encoding {
	return currentEncoding
}

func GetEncodingName() string {
	return currentEncodingName
}
