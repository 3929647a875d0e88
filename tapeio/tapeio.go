// Package tapeio moves disclosure tapes through files. The authentication
// core treats tape transport as a collaborator concern; this package is
// such a collaborator for local handoff, preserving entry content and order
// exactly.
package tapeio

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/nullstyle/go-xdr/xdr3"
)

// Save writes tape to path. The file is replaced atomically, so a reader
// never observes a partially written tape.
func Save(path string, tape []string) error {
	var w bytes.Buffer
	if _, err := xdr.Marshal(&w, tape); err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}
	if err := atomic.WriteFile(path, &w); err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}
	return nil
}

// Load reads a tape previously written with Save.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file failure: %w", err)
	}
	var tape []string
	if _, err := xdr.Unmarshal(bytes.NewReader(data), &tape); err != nil {
		return nil, fmt.Errorf("deserialization failure: %w", err)
	}
	return tape, nil
}
