package pack

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

type FileLoader func(b []byte) (interface{}, error)

type handler struct {
	format string
	probe  func(b []byte) bool
	load   FileLoader
}

var gHandlers []*handler

// SetHandler registers a loader for files with the format extension.
// probe recognizes the same files by content when the name says nothing.
func SetHandler(format string, probe func(b []byte) bool, ldr FileLoader) {
	h := &handler{
		format: strings.ToUpper(format),
		probe:  probe,
		load:   ldr,
	}
	for i, old := range gHandlers {
		if old.format == h.format {
			log.Printf("[pack] Handler for '%s' replaced", h.format)
			gHandlers[i] = h
			return
		}
	}
	gHandlers = append(gHandlers, h)
}

// Detect returns the registered format of b, trying probes in registration order.
func Detect(b []byte) (string, bool) {
	for _, h := range gHandlers {
		if h.probe != nil && h.probe(b) {
			return h.format, true
		}
	}
	return "", false
}

// CallHandler loads b with the handler matching the extension of name,
// falling back to content detection.
func CallHandler(name string, b []byte) (interface{}, error) {
	ext := strings.ToUpper(filepath.Ext(name))

	for _, h := range gHandlers {
		if h.format == ext {
			return h.load(b)
		}
	}
	for _, h := range gHandlers {
		if h.probe != nil && h.probe(b) {
			return h.load(b)
		}
	}
	return nil, fmt.Errorf("[pack] Cannot find handler for '%s' (%s)", ext, name)
}
