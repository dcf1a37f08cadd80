package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-farm/internal/savegame"
	"github.com/pixil98/go-farm/internal/storage"
)

type StorageConfig struct {
	Crops AssetConfig[*farm.Crop]        `json:"crops"`
	Saves SaveConfig[*savegame.Document] `json:"saves"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Crops.Validate("crops"))
	el.Add(c.Saves.Validate("saves"))
	return el.Err()
}

// AssetConfig points at a directory of content files that must already
// exist, like the crop catalogue.
type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// SaveConfig points at a writable directory that is created on first
// run, so a fresh server starts without any setup.
type SaveConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *SaveConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	return nil
}

func (c *SaveConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	if err := os.MkdirAll(c.Path, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory %q: %w", c.Path, err)
	}
	return storage.NewFileStore[T](c.Path)
}
