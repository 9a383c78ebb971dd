// Command pimg applies parallel spatial image filters from the command line.
//
// Usage:
//
//	pimg blur [-r radius] [-w workers] <input> <output>
//	pimg kuwahara [-r radius] [-w workers] <input> <output>
//	pimg pi [-n samples] [-w workers]
//	pimg update
package main

import (
	"os"

	"github.com/Fepozopo/pimg/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
