// Package cli holds the option parsing and rendering shared by the thin
// ow* binaries. All protocol work stays in owclient; this package only
// maps flags to a Config and prints results.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/onewire-tools/owctl/internal/config"
	"github.com/onewire-tools/owctl/internal/owclient"
)

// options collects every command-line switch the ow* tools share.
type options struct {
	configPath string
	server     string

	celsius    bool
	fahrenheit bool
	kelvin     bool
	rankine    bool

	mbar bool
	atm  bool
	mmhg bool
	inhg bool
	psi  bool
	pa   bool

	format string

	hex      bool
	bare     bool
	dirSlash bool
	prune    bool
	persist  bool
	uncached bool

	size   int
	offset int
}

// Parse maps argv onto an owclient.Config plus the remaining 1-wire path
// arguments. A TOML config file (-config) supplies defaults; explicit
// flags override it.
func Parse(name, usage string, argv []string) (owclient.Config, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options

	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.StringVar(&opts.server, "s", "", "owserver address (host:port)")
	fs.StringVar(&opts.server, "server", "", "owserver address (host:port)")

	fs.BoolVar(&opts.celsius, "C", false, "temperature in Celsius")
	fs.BoolVar(&opts.celsius, "Celsius", false, "temperature in Celsius")
	fs.BoolVar(&opts.fahrenheit, "F", false, "temperature in Fahrenheit")
	fs.BoolVar(&opts.fahrenheit, "Fahrenheit", false, "temperature in Fahrenheit")
	fs.BoolVar(&opts.kelvin, "K", false, "temperature in Kelvin")
	fs.BoolVar(&opts.kelvin, "Kelvin", false, "temperature in Kelvin")
	fs.BoolVar(&opts.rankine, "R", false, "temperature in Rankine")
	fs.BoolVar(&opts.rankine, "Rankine", false, "temperature in Rankine")

	fs.BoolVar(&opts.mbar, "mbar", false, "pressure in millibar")
	fs.BoolVar(&opts.atm, "atm", false, "pressure in atmospheres")
	fs.BoolVar(&opts.mmhg, "mmhg", false, "pressure in mmHg")
	fs.BoolVar(&opts.inhg, "inhg", false, "pressure in inHg")
	fs.BoolVar(&opts.psi, "psi", false, "pressure in psi")
	fs.BoolVar(&opts.pa, "pa", false, "pressure in pascal")

	fs.StringVar(&opts.format, "d", "", "device id format: fi | f.i | fic | f.ic | fi.c | f.i.c")
	fs.StringVar(&opts.format, "format", "", "device id format: fi | f.i | fic | f.ic | fi.c | f.i.c")

	fs.BoolVar(&opts.hex, "hex", false, "values as hex byte pairs")
	fs.BoolVar(&opts.bare, "bare", false, "suppress bus.* and other synthetic entries")
	fs.BoolVar(&opts.dirSlash, "dir", false, "mark directories with a trailing slash")
	fs.BoolVar(&opts.prune, "prune", false, "drop convenience properties from listings (implies -bare)")
	fs.BoolVar(&opts.persist, "persist", false, "request a persistent server connection")
	fs.BoolVar(&opts.uncached, "uncached", false, "bypass the server cache")

	fs.IntVar(&opts.size, "size", 0, "read at most n bytes")
	fs.IntVar(&opts.offset, "offset", 0, "start reading at byte m")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s [OPTIONS] PATH...\n%s\n\nOPTIONS:\n", name, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		// The flag package already reported this to fs.Output().
		return owclient.Config{}, nil, err
	}

	fail := func(err error) (owclient.Config, []string, error) {
		fmt.Fprintf(fs.Output(), "%s: %v\n", name, err)
		return owclient.Config{}, nil, err
	}

	cfg := owclient.Config{}
	if opts.configPath != "" {
		fileCfg, err := config.LoadClientConfig(opts.configPath)
		if err != nil {
			return fail(err)
		}
		cfg, err = fileCfg.Resolve()
		if err != nil {
			return fail(err)
		}
	}

	if err := opts.apply(&cfg); err != nil {
		return fail(err)
	}
	return cfg, fs.Args(), nil
}

// ExitCode maps a Parse error onto the process exit status: asking for
// help is not a failure.
func ExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func (o *options) apply(cfg *owclient.Config) error {
	if o.server != "" {
		cfg.Server = o.server
	}

	switch {
	case o.rankine:
		cfg.Temperature = owclient.Rankine
	case o.kelvin:
		cfg.Temperature = owclient.Kelvin
	case o.fahrenheit:
		cfg.Temperature = owclient.Fahrenheit
	case o.celsius:
		cfg.Temperature = owclient.Celsius
	}

	switch {
	case o.pa:
		cfg.Pressure = owclient.Pa
	case o.psi:
		cfg.Pressure = owclient.Psi
	case o.inhg:
		cfg.Pressure = owclient.InHg
	case o.mmhg:
		cfg.Pressure = owclient.MmHg
	case o.atm:
		cfg.Pressure = owclient.Atm
	case o.mbar:
		cfg.Pressure = owclient.Mbar
	}

	if o.format != "" {
		f, err := owclient.ParseIDFormat(o.format)
		if err != nil {
			return err
		}
		cfg.Format = f
	}

	cfg.Hex = cfg.Hex || o.hex
	cfg.Bare = cfg.Bare || o.bare || o.prune
	cfg.Slash = cfg.Slash || o.dirSlash
	cfg.Prune = cfg.Prune || o.prune
	cfg.Persistence = cfg.Persistence || o.persist
	cfg.Uncached = cfg.Uncached || o.uncached

	if o.size > 0 {
		cfg.ReadSize = int32(o.size)
	}
	if o.offset > 0 {
		cfg.ReadOffset = int32(o.offset)
	}
	return nil
}

// PrintListing writes one entry per line.
func PrintListing(w io.Writer, entries []string) {
	for _, e := range entries {
		fmt.Fprintln(w, e)
	}
}
