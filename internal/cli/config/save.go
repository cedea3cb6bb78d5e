package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Marshal encodes the descriptor as YAML with two-space indentation
func Marshal(desc *Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(desc); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the descriptor to path. An existing file is only replaced when
// overwrite is set.
func Save(fsys afero.Fs, path string, desc *Descriptor, overwrite bool) error {
	if err := desc.Validate(); err != nil {
		return err
	}

	if !overwrite {
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := Marshal(desc)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
