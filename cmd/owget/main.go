// owget reads a 1-wire file or lists a 1-wire directory, whichever the
// path names.
package main

import (
	"fmt"
	"os"

	"github.com/onewire-tools/owctl/internal/cli"
	"github.com/onewire-tools/owctl/internal/owclient"
)

func main() {
	cfg, paths, err := cli.Parse("owget", "Read a 1-wire file or list a 1-wire directory.", os.Args[1:])
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	c := owclient.New(cfg)
	failed := false
	for _, path := range paths {
		result, err := c.Get(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "owget: %s: %v\n", path, err)
			failed = true
			continue
		}
		if result.IsDir() {
			cli.PrintListing(os.Stdout, result.Entries)
			continue
		}
		out, err := c.FormatValue(result.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "owget: %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Println(out)
	}
	if failed {
		os.Exit(1)
	}
}
