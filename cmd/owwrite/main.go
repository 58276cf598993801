// owwrite stores a value into a 1-wire device property via owserver.
package main

import (
	"fmt"
	"os"

	"github.com/onewire-tools/owctl/internal/cli"
	"github.com/onewire-tools/owctl/internal/owclient"
)

func main() {
	cfg, args, err := cli.Parse("owwrite", "Write a value to a 1-wire device property.", os.Args[1:])
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "owwrite: expected exactly PATH VALUE")
		os.Exit(2)
	}
	path, value := args[0], args[1]

	c := owclient.New(cfg)
	data, err := c.ParseWriteInput(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "owwrite: %v\n", err)
		os.Exit(2)
	}
	if err := c.Write(path, data); err != nil {
		fmt.Fprintf(os.Stderr, "owwrite: %s: %v\n", path, err)
		os.Exit(1)
	}
}
