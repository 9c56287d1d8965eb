package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
)

const conversionSuffix = "_conversion"

// dropOutput returns the output path of a texture converted without an
// explicit destination. Textures sitting next to the executable get a
// suffixed copy, others are converted in place.
func dropOutput(input, exeDir string) string {
	dir := filepath.Dir(input)
	if exeDir != "" && strings.EqualFold(filepath.Clean(dir), filepath.Clean(exeDir)) {
		base := filepath.Base(input)
		return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+conversionSuffix+".dds")
	}
	return input
}

// batchOutput returns the default output folder of a folder or archive
// source: a sibling named after the source.
func batchOutput(src string) string {
	src = strings.TrimRight(src, `/\`)
	if archives.PathIsArchive(src) {
		for archives.PathIsArchive(src) {
			src = strings.TrimSuffix(src, filepath.Ext(src))
		}
	} else if info, err := os.Stat(src); err == nil && !info.IsDir() {
		src = strings.TrimSuffix(src, filepath.Ext(src))
	}
	return src + conversionSuffix
}

// writeFile writes data to a temporary file next to path and renames it
// into place, so a failed write never leaves a partial texture behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create folder %q", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write %q", tmp.Name())
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to chmod %q", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %q", tmp.Name())
	}

	return errors.Wrapf(os.Rename(tmp.Name(), path), "failed to rename to %q", path)
}
