// Command dlvmlint parses one or more module files and reports the
// first error in each, colorized the way a linter's diagnostics are
// meant to be read at a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/rxwei/dlvm-core/ir/irio"
)

var (
	dump = flag.Bool("dump", false, "dump the parsed module structure instead of just validating it")
)

func main() {
	flag.Parse()
	out := colorable.NewColorableStdout()
	errOut := colorable.NewColorableStderr()

	if flag.NArg() == 0 {
		fmt.Fprintln(errOut, color.RedString("dlvmlint: no input files"))
		os.Exit(2)
	}

	exit := 0
	for _, path := range flag.Args() {
		if err := lintOne(path, out, errOut); err != nil {
			exit = 1
		}
	}
	os.Exit(exit)
}

func lintOne(path string, out, errOut io.Writer) error {
	mod, err := irio.Load(path)
	if err != nil {
		fmt.Fprintf(errOut, "%s %s: %v\n", color.RedString("FAIL"), path, err)
		return err
	}
	if *dump {
		fmt.Fprintln(out, irio.Dump(mod))
	} else {
		fmt.Fprintf(out, "%s %s (module %q, %d function(s))\n",
			color.GreenString("OK"), path, mod.Name, len(mod.Functions))
	}
	return nil
}
