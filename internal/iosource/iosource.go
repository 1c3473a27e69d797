// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// Package iosource abstracts the byte-stream source/sink the CLI and
// tests read and write timelines through, so production code always goes
// through the real filesystem while tests can substitute an in-memory one
// without touching disk.
package iosource

import (
	"io"
	"os"
	"path/filepath"

	"github.com/absfs/absfs"
)

// FileSystem is the minimal surface otiocat needs to read and write a
// timeline file. It is satisfied by both the real OS filesystem and an
// absfs.FileSystem such as memfs, so tests never need a temp directory.
type FileSystem interface {
	Open(name string) (absfs.File, error)
	Create(name string) (absfs.File, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// osFS wraps the os package to implement FileSystem.
type osFS struct{}

// OS is the default, disk-backed FileSystem.
var OS FileSystem = osFS{}

func (osFS) Open(name string) (absfs.File, error) { return os.Open(name) }

func (osFS) Create(name string) (absfs.File, error) { return os.Create(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// memAdapter adapts an absfs.FileSystem (memfs, for example) to FileSystem.
type memAdapter struct {
	fs absfs.FileSystem
}

// NewMemAdapter wraps an absfs.FileSystem, such as memfs.NewFS's result,
// as a FileSystem.
func NewMemAdapter(fs absfs.FileSystem) FileSystem {
	return &memAdapter{fs: fs}
}

func (m *memAdapter) Open(name string) (absfs.File, error) { return m.fs.Open(name) }

func (m *memAdapter) Create(name string) (absfs.File, error) {
	dir := filepath.Dir(name)
	if dir != "" && dir != "." {
		m.fs.MkdirAll(dir, 0755)
	}
	return m.fs.Create(name)
}

func (m *memAdapter) ReadFile(name string) ([]byte, error) {
	f, err := m.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (m *memAdapter) WriteFile(name string, data []byte, perm os.FileMode) error {
	f, err := m.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}
