package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/crazy-max/x360dds/internal/app"
	"github.com/crazy-max/x360dds/internal/logging"
	"github.com/crazy-max/x360dds/pkg/config"
	"github.com/crazy-max/x360dds/pkg/dds"
	"github.com/rs/zerolog/log"
)

var (
	version = "dev"
	meta    = config.Meta{
		ID:     "x360dds",
		Name:   "x360dds",
		Desc:   "Convert Xbox 360 tiled DDS textures to standard DDS textures",
		URL:    "https://github.com/crazy-max/x360dds",
		Author: "CrazyMax",
	}
)

func main() {
	var cli config.Cli
	meta.Version = version

	_ = kong.Parse(&cli,
		kong.Name(meta.ID),
		kong.Description(fmt.Sprintf("%s (%s). More info: %s", meta.Desc, strings.Join(dds.SupportedFourCCs(), ", "), meta.URL)),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if err := logging.Configure(cli.LogOptions()); err != nil {
		log.Fatal().Err(err).Msg("cannot configure logging")
	}

	x360dds, err := app.New(meta, cli)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize x360dds")
	}

	// in-flight textures finish their atomic write, queued ones are skipped
	channel := make(chan os.Signal, 1)
	signal.Notify(channel, os.Interrupt, SIGTERM)
	go func() {
		sig := <-channel
		log.Warn().Msgf("caught signal %v", sig)
		x360dds.Close()
	}()

	if err = x360dds.Start(); err != nil {
		log.Fatal().Stack().Err(err).Send()
	}
}
