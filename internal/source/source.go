package source

import (
	"context"
	"io"
	"io/fs"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
)

const (
	TypeFile    = "file"
	TypeFolder  = "folder"
	TypeArchive = "archive"
)

// Handler is a source interface
type Handler interface {
	Walk(fn WalkFunc) error
	Type() string
}

// Client represents an active source object
type Client struct {
	Handler
}

// WalkFunc is called for every texture of a source. Returning an error
// stops the walk.
type WalkFunc func(tex Texture) error

// Texture is a file found in a source
type Texture struct {
	// Name is the slash separated path of the texture relative to the
	// source root, or its base name for a single file source.
	Name string
	Size int64

	ctx  context.Context
	fsys fs.FS
	path string
}

// ReadAll reads the whole texture, honoring cancellation of the source
// context.
func (t Texture) ReadAll() ([]byte, error) {
	f, err := t.fsys.Open(t.path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", t.Name)
	}
	defer f.Close()

	data, err := io.ReadAll(readerContext(t.ctx, f))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", t.Name)
	}
	return data, nil
}

// New opens path as a source. path may be a single file, a folder or an
// archive. includes restricts folder and archive sources to a subset of
// paths.
func New(ctx context.Context, path string, includes []string) (*Client, error) {
	fsys, err := archives.FileSystem(ctx, path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open source %q", path)
	}

	switch f := fsys.(type) {
	case archives.FileFS:
		return &Client{
			Handler: &File{
				ctx:  ctx,
				fsys: f,
				name: fileName(f),
			},
		}, nil
	case archives.DirFS:
		return &Client{
			Handler: newTree(ctx, f, TypeFolder, includes),
		}, nil
	default:
		return &Client{
			Handler: newTree(ctx, f, TypeArchive, includes),
		}, nil
	}
}
