// Package config loads and stores configuration documents on disk. The
// encoding follows the file extension (see codec.Infer).
package config

import (
	"fmt"
	"os"

	"github.com/deep-rent/sidein/codec"
)

// Load decodes the file at path into v.
func Load(path string, v any) error {
	dec, err := codec.Infer(path)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := dec.Decode(raw, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Save encodes v and writes it to path.
func Save(path string, v any) error {
	enc, err := codec.Infer(path)
	if err != nil {
		return err
	}
	raw, err := enc.Encode(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}
