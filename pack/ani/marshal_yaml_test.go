package ani

import (
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mogaika/ani_codec/utils"
)

func TestYAMLRoundTrip(t *testing.T) {
	a := newTestANI()

	b, err := yaml.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	text := string(b)
	for _, want := range []string{
		"keyframe_count: 20",
		"# node 3",
		"format: RotShorts",
		"type: Dummy",
		"translation: [1, 2, 3]",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("yaml has no %q:\n%s", want, text)
		}
	}

	back, err := NewFromYAML(b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, a) {
		t.Errorf("yaml round trip differs:\n%s\nexpected:\n%s", utils.SDump(back), utils.SDump(a))
	}
}

func TestYAMLRejectsUnknownNames(t *testing.T) {
	for _, doc := range []string{
		"nodes:\n- name: a\n  type: Bone\n",
		"nodes:\n- name: a\n  type: Geom\n  animation:\n    format: Euler\n",
	} {
		if _, err := NewFromYAML([]byte(doc)); err == nil {
			t.Errorf("NewFromYAML accepted %q", utils.DumpToOneLineString([]byte(doc)))
		}
	}
}
