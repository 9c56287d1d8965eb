package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/crazy-max/x360dds/internal/source"
	"github.com/crazy-max/x360dds/pkg/config"
	"github.com/crazy-max/x360dds/pkg/converter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// X360dds represents an active x360dds object
type X360dds struct {
	ctx    context.Context
	cancel context.CancelFunc
	meta   config.Meta
	cli    config.Cli
	exeDir string
	report *Report
}

// New creates new x360dds instance
func New(meta config.Meta, cli config.Cli) (*X360dds, error) {
	if err := cli.Validate(); err != nil {
		return nil, errors.Wrap(err, "aborting")
	}
	if cli.Workers <= 0 {
		cli.Workers = runtime.NumCPU()
	}

	var exeDir string
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &X360dds{
		ctx:    ctx,
		cancel: cancel,
		meta:   meta,
		cli:    cli,
		exeDir: exeDir,
		report: &Report{},
	}, nil
}

// Start starts x360dds
func (c *X360dds) Start() error {
	log.Info().Msgf("Starting %s %s", c.meta.Name, c.meta.Version)

	src, err := source.New(c.ctx, c.cli.Source, c.cli.Includes)
	if err != nil {
		return err
	}

	logger := log.With().Str("src", c.cli.Source).Str("type", src.Type()).Logger()
	if src.Type() == source.TypeFile {
		err = c.convertFile(logger, src)
	} else {
		err = c.convertBatch(logger, src)
	}

	if c.cli.Report != "" {
		if werr := c.report.Write(c.cli.Report); werr != nil {
			logger.Error().Err(werr).Msg("Cannot write report")
		} else {
			logger.Info().Msgf("Report written to %s", c.cli.Report)
		}
	}

	return err
}

// Close closes x360dds
func (c *X360dds) Close() {
	c.cancel()
}

func (c *X360dds) convertFile(logger zerolog.Logger, src *source.Client) error {
	dist := c.cli.Dist
	if dist == "" {
		dist = dropOutput(c.cli.Source, c.exeDir)
	}
	return src.Walk(func(tex source.Texture) error {
		if err := c.convert(logger, tex, dist); err != nil {
			return errors.Wrapf(err, "failed to convert %s", c.cli.Source)
		}
		return nil
	})
}

func (c *X360dds) convertBatch(logger zerolog.Logger, src *source.Client) error {
	dist := c.cli.Dist
	if dist == "" {
		dist = batchOutput(c.cli.Source)
	}
	if _, err := os.Stat(dist); err == nil && c.cli.RmDist {
		if err := os.RemoveAll(dist); err != nil {
			return errors.Wrapf(err, "failed to remove dist folder %q", dist)
		}
	}
	if err := os.MkdirAll(dist, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create dist folder %q", dist)
	}
	logger.Info().Str("dist", dist).Int("workers", c.cli.Workers).Msg("Batch converting textures")

	var total int
	eg, _ := errgroup.WithContext(c.ctx)
	eg.SetLimit(c.cli.Workers)
	err := src.Walk(func(tex source.Texture) error {
		total++
		eg.Go(func() error {
			c.convertQueued(logger, tex, filepath.Join(dist, filepath.FromSlash(tex.Name)))
			return nil
		})
		return nil
	})
	_ = eg.Wait()
	if err != nil {
		return errors.Wrap(err, "cannot list source")
	}

	return c.summarize(logger, total)
}

// convertQueued converts a texture picked up by a batch worker. Textures
// still queued when the run is canceled are reported as skipped.
func (c *X360dds) convertQueued(logger zerolog.Logger, tex source.Texture, dst string) {
	if err := c.ctx.Err(); err != nil {
		c.report.Add(Entry{Source: tex.Name, Skipped: true, Error: err.Error()})
		return
	}
	sublogger := logger.With().Str("texture", tex.Name).Logger()
	if err := c.convert(sublogger, tex, dst); err != nil {
		sublogger.Error().Err(err).Msg("Failed to convert texture")
	}
}

func (c *X360dds) summarize(logger zerolog.Logger, total int) error {
	failed, skipped := c.report.Failed(), c.report.Skipped()
	converted := total - failed - skipped
	switch {
	case total == 0:
		logger.Warn().Msg("No DDS textures found")
	case skipped > 0:
		return errors.Wrapf(c.ctx.Err(), "%d of %d textures skipped (%d converted, %d failed)", skipped, total, converted, failed)
	case failed == total:
		return errors.Errorf("all %d textures failed to convert", total)
	case failed > 0:
		logger.Warn().Msgf("%d of %d textures failed to convert", failed, total)
	default:
		logger.Info().Msgf("%d textures converted", total)
	}
	return nil
}

// convert converts a single texture to dst and records the outcome
func (c *X360dds) convert(logger zerolog.Logger, tex source.Texture, dst string) error {
	entry, err := c.convertTexture(logger, tex, dst)
	if err != nil {
		entry.Error = err.Error()
	}
	c.report.Add(entry)
	return err
}

func (c *X360dds) convertTexture(logger zerolog.Logger, tex source.Texture, dst string) (Entry, error) {
	entry := Entry{Source: tex.Name}

	input, err := tex.ReadAll()
	if err != nil {
		return entry, err
	}

	opts := c.cli.ConvertOptions()
	opts.Logger = logrus.WithField("texture", tex.Name)
	res, err := converter.Convert(input, opts)
	if err != nil {
		return entry, err
	}

	entry = newEntry(tex.Name, res)
	logger.Debug().
		Str("in", formatHash(res.InputHash)).
		Str("out", formatHash(res.OutputHash)).
		Int("untiled", entry.Untiled).
		Msgf("Converted %d mip levels", entry.Levels)

	if err := writeFile(dst, res.Output); err != nil {
		return entry, err
	}
	entry.Output = dst

	logger.Info().Str("dst", dst).Msgf("Converted %s", res.Header)
	return entry, nil
}

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
