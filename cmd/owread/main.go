// owread reads 1-wire property values from owserver.
package main

import (
	"fmt"
	"os"

	"github.com/onewire-tools/owctl/internal/cli"
	"github.com/onewire-tools/owctl/internal/owclient"
)

func main() {
	cfg, paths, err := cli.Parse("owread", "Read the value of a 1-wire device property.", os.Args[1:])
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "owread: no path given")
		os.Exit(2)
	}

	c := owclient.New(cfg)
	failed := false
	for _, path := range paths {
		value, err := c.Read(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "owread: %s: %v\n", path, err)
			failed = true
			continue
		}
		out, err := c.FormatValue(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "owread: %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Println(out)
	}
	if failed {
		os.Exit(1)
	}
}
