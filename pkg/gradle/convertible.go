package gradle

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/gradlegen/gradlegen/pkg/metadata"
)

// MetadataConsumer receives metadata from its owner before rendering.
type MetadataConsumer interface {
	ProvideMetadata(md metadata.Provider) error
}

// FileConvertible is a document that can be written to a fixed file name inside a directory.
type FileConvertible interface {
	MetadataConsumer
	FileName() string
	String() string
	GenerateToFile(fsys afero.Fs, dir string) error
}

// provideAll hands md to every consumer in order. Every consumer is attempted;
// failures are combined into a single error.
func provideAll[T MetadataConsumer](md metadata.Provider, consumers []T) error {
	var err error
	for _, c := range consumers {
		err = multierr.Append(err, c.ProvideMetadata(md))
	}
	return err
}

// writeDocument writes content to dir/name, replacing any existing file.
// dir must already exist.
func writeDocument(fsys afero.Fs, dir, name, content string) error {
	path := filepath.Join(dir, name)

	ok, err := afero.DirExists(fsys, dir)
	if err != nil {
		return &FileError{Op: "stat", Path: dir, Err: err}
	}
	if !ok {
		return &FileError{Op: "write", Path: path, Err: fs.ErrNotExist}
	}

	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
