package pack_test

import (
	"testing"

	"github.com/mogaika/ani_codec/pack"
	"github.com/mogaika/ani_codec/pack/ani"
)

func TestAniHandler(t *testing.T) {
	b, err := (&ani.ANI{Nodes: []ani.Node{ani.NewNode("root")}}).Marshal()
	if err != nil {
		t.Fatal(err)
	}

	if format, ok := pack.Detect(b); !ok || format != ".ANI" {
		t.Errorf("Detect()=%q,%v; expected .ANI", format, ok)
	}
	if _, ok := pack.Detect([]byte("not an animation")); ok {
		t.Errorf("Detect() recognized garbage")
	}

	for _, name := range []string{"pl_body.ani", "PL_BODY.ANI", "unnamed"} {
		inst, err := pack.CallHandler(name, b)
		if err != nil {
			t.Errorf("CallHandler(%q): %v", name, err)
			continue
		}
		if a, ok := inst.(*ani.ANI); !ok || len(a.Nodes) != 1 || a.Nodes[0].Name != "root" {
			t.Errorf("CallHandler(%q) returned %#v", name, inst)
		}
	}

	if _, err := pack.CallHandler("model.bin", []byte{1, 2, 3}); err == nil {
		t.Errorf("CallHandler accepted unknown file")
	}
}

func TestSetHandlerReplaces(t *testing.T) {
	pack.SetHandler(".tst", nil, func(b []byte) (interface{}, error) { return "first", nil })
	pack.SetHandler(".TST", nil, func(b []byte) (interface{}, error) { return "second", nil })

	if inst, err := pack.CallHandler("data.tst", nil); err != nil || inst != "second" {
		t.Errorf("CallHandler(data.tst)=%v,%v; expected second handler", inst, err)
	}
}
