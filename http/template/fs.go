package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed tmpl/*
var embedded embed.FS

// A layeredFS opens a name from the first layer holding it.
// Which layer that was is remembered, so later opens go straight there.
type layeredFS struct {
	layers []fs.FS
	found  sync.Map // name -> fs.FS
}

func newLayeredFS(layers ...fs.FS) *layeredFS {
	return &layeredFS{layers: layers}
}

// Open implements fs.FS.
// A layer failing with anything other than fs.ErrNotExist or fs.ErrInvalid stops the search.
func (lfs *layeredFS) Open(name string) (fs.File, error) {
	if layer, ok := lfs.found.Load(name); ok {
		return layer.(fs.FS).Open(name)
	}

	var err error
	for _, layer := range lfs.layers {
		var f fs.File
		if f, err = layer.Open(name); err == nil {
			lfs.found.Store(name, layer)
			return f, nil
		}

		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("cannot open template %s: %w", name, err)
		}
	}

	return nil, fmt.Errorf("no template %s: %w", name, err)
}
