package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generator creates opaque IDs used to correlate one job run.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces "<prefix><utc timestamp>-<random hex>" IDs that
// sort by creation time.
type RandomGenerator struct {
	prefix string
	now    func() time.Time
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix, now: time.Now}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return g.prefix + g.now().UTC().Format("20060102T150405") + "-" + hex.EncodeToString(buf), nil
}
