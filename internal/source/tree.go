package source

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Ext is the extension of the textures picked from folders and archives.
const Ext = ".dds"

// Tree is a source made of every texture found in a folder or an archive
type Tree struct {
	ctx      context.Context
	fsys     fs.FS
	typ      string
	includes []string
}

func newTree(ctx context.Context, fsys fs.FS, typ string, includes []string) *Tree {
	var paths []string
	for _, inc := range includes {
		inc = strings.TrimPrefix(inc, "/")
		if len(inc) > 0 {
			paths = append(paths, inc)
		}
	}
	return &Tree{
		ctx:      ctx,
		fsys:     fsys,
		typ:      typ,
		includes: paths,
	}
}

// Type returns the source type
func (c *Tree) Type() string {
	return c.typ
}

// Walk calls fn for every texture in lexical order
func (c *Tree) Walk(fn WalkFunc) error {
	return fs.WalkDir(c.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "cannot walk %s", name)
		}
		if err := c.ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !strings.EqualFold(path.Ext(name), Ext) || !fileIsIncluded(c.includes, name) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, "cannot stat %s", name)
		}
		return fn(Texture{
			Name: name,
			Size: info.Size(),
			ctx:  c.ctx,
			fsys: c.fsys,
			path: name,
		})
	})
}
