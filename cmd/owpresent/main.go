// owpresent tests whether 1-wire paths exist on owserver.
package main

import (
	"fmt"
	"os"

	"github.com/onewire-tools/owctl/internal/cli"
	"github.com/onewire-tools/owctl/internal/owclient"
)

func main() {
	cfg, paths, err := cli.Parse("owpresent", "Test whether a 1-wire path exists.", os.Args[1:])
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	c := owclient.New(cfg)
	failed := false
	for _, path := range paths {
		present, err := c.Present(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "owpresent: %s: %v\n", path, err)
			failed = true
			continue
		}
		if present {
			fmt.Println("1")
		} else {
			fmt.Println("0")
		}
	}
	if failed {
		os.Exit(1)
	}
}
