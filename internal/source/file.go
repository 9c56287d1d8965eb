package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
)

// File is a source made of a single texture
type File struct {
	ctx  context.Context
	fsys archives.FileFS
	name string
}

// Type returns the source type
func (c *File) Type() string {
	return TypeFile
}

// Walk calls fn once with the texture
func (c *File) Walk(fn WalkFunc) error {
	info, err := c.fsys.Stat(".")
	if err != nil {
		return errors.Wrapf(err, "cannot stat %s", c.fsys.Path)
	}
	return fn(Texture{
		Name: c.name,
		Size: info.Size(),
		ctx:  c.ctx,
		fsys: c.fsys,
		path: ".",
	})
}

// fileName returns the base name of the file, without its compression
// extension if it is transparently decompressed.
func fileName(f archives.FileFS) string {
	name := filepath.Base(f.Path)
	if f.Compression != nil {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
