// owtree renders the 1-wire namespace as a tree, one server exchange per
// directory level.
package main

import (
	"fmt"
	"os"

	"github.com/onewire-tools/owctl/internal/cli"
	"github.com/onewire-tools/owctl/internal/owclient"
)

func main() {
	cfg, paths, err := cli.Parse("owtree", "Print the 1-wire directory tree.", os.Args[1:])
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	c := owclient.New(cfg)
	failed := false
	for _, path := range paths {
		if err := cli.Tree(os.Stdout, c, path); err != nil {
			fmt.Fprintf(os.Stderr, "owtree: %s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
