package config

import (
	"github.com/alecthomas/kong"
	"github.com/crazy-max/x360dds/internal/logging"
	"github.com/crazy-max/x360dds/pkg/converter"
)

type Cli struct {
	Version kong.VersionFlag

	LogLevel   string `kong:"name=log-level,env=LOG_LEVEL,default=info,help='Set log level.'"`
	LogJSON    bool   `kong:"name=log-json,env=LOG_JSON,default=false,help='Enable JSON logging output.'"`
	LogCaller  bool   `kong:"name=log-caller,env=LOG_CALLER,default=false,help='Add file:line of the caller to log output.'"`
	LogNoColor bool   `kong:"name=log-nocolor,env=LOG_NOCOLOR,default=false,help='Disable colorized output.'"`

	NoUnswizzle  bool `kong:"name=no-unswizzle,env=X360DDS_NO_UNSWIZZLE,default=false,help='Do not untile mip levels.'"`
	NoEndianSwap bool `kong:"name=no-endianswap,env=X360DDS_NO_ENDIANSWAP,default=false,help='Do not swap the byte order of the payload.'"`

	Includes []string `kong:"name=include,help='Include a subset of files/dirs from a folder or archive source.'"`
	Workers  int      `kong:"name=workers,env=X360DDS_WORKERS,default=0,help='Number of textures converted in parallel. (0 = number of CPUs)'"`
	RmDist   bool     `kong:"name=rm-dist,default=false,help='Removes dist folder before a batch conversion.'"`
	Report   string   `kong:"name=report,type=path,env=X360DDS_REPORT,help='Write a JSON conversion report to this file.'"`

	Source string `kong:"arg,required,name=source,type=path,help='DDS file, folder or archive to convert.'"`
	Dist   string `kong:"arg,optional,name=dist,type=path,help='Output file or folder. (eg. ./dist)'"`
}

// Validate rejects flag combinations that would not transform anything.
func (c *Cli) Validate() error {
	return c.ConvertOptions().Validate()
}

// ConvertOptions returns the conversion options selected on the command line.
func (c *Cli) ConvertOptions() converter.Options {
	return converter.Options{
		NoUntile:     c.NoUnswizzle,
		NoEndianSwap: c.NoEndianSwap,
	}
}

// LogOptions returns the logging options selected on the command line.
func (c *Cli) LogOptions() logging.Options {
	return logging.Options{
		Level:   c.LogLevel,
		JSON:    c.LogJSON,
		Caller:  c.LogCaller,
		NoColor: c.LogNoColor,
	}
}
