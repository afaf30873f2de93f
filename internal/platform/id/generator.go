package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generator creates identifiers for forecast runs.
type Generator interface {
	NewID() (string, error)
}

// RunIDGenerator produces ids like "run-20261019T101500Z-3fa9c1d2", sortable by start time.
type RunIDGenerator struct {
	now func() time.Time
}

func NewRunIDGenerator() *RunIDGenerator {
	return &RunIDGenerator{now: time.Now}
}

func (g *RunIDGenerator) NewID() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	now := time.Now
	if g != nil && g.now != nil {
		now = g.now
	}

	return fmt.Sprintf("run-%s-%s", now().UTC().Format("20060102T150405Z"), hex.EncodeToString(buf)), nil
}
