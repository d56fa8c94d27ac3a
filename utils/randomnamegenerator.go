package utils

import (
	"fmt"
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// NodeNameGenerator produces unique, deterministic node names for fixtures.
// The same seed always yields the same sequence.
type NodeNameGenerator struct {
	used map[string]struct{}
}

func NewNodeNameGenerator(seed int64) *NodeNameGenerator {
	randomdata.CustomRand(rand.New(rand.NewSource(seed)))
	return &NodeNameGenerator{used: make(map[string]struct{})}
}

func (g *NodeNameGenerator) Name(prefix string) string {
	for {
		name := fmt.Sprintf("%s_%s", prefix, randomdata.SillyName())
		if _, exists := g.used[name]; !exists {
			g.used[name] = struct{}{}
			return name
		}
	}
}
