// owdir lists 1-wire directories from owserver.
package main

import (
	"fmt"
	"os"

	"github.com/onewire-tools/owctl/internal/cli"
	"github.com/onewire-tools/owctl/internal/owclient"
)

func main() {
	cfg, paths, err := cli.Parse("owdir", "List a 1-wire directory from owserver.", os.Args[1:])
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	c := owclient.New(cfg)
	failed := false
	for _, path := range paths {
		entries, err := c.DirAll(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "owdir: %s: %v\n", path, err)
			failed = true
			continue
		}
		cli.PrintListing(os.Stdout, entries)
	}
	if failed {
		os.Exit(1)
	}
}
