// Command subnetter is an interactive IPv4 subnet calculator. With
// positional arguments it computes once and exits; without, it runs a
// prompt loop that re-asks on error and reuses the previous input when
// the user presses enter on an empty line.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"subnetter/internal/subnet"
)

type options struct {
	CSV     bool `long:"csv" description:"Write the result in field,value CSV form"`
	NoColor bool `long:"no-color" description:"Disable ANSI colors"`

	Args struct {
		Input string `positional-arg-name:"ADDRESS[/PREFIX]"`
		Mask  string `positional-arg-name:"MASK"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] [ADDRESS[/PREFIX] [MASK]]"
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	out := newRenderer(os.Stdout, !opts.NoColor)

	// One-shot mode.
	if opts.Args.Input != "" {
		addr, prefix, err := subnet.Parse(opts.Args.Input, opts.Args.Mask)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		result := subnet.Compute(addr, prefix)
		if opts.CSV {
			if err := writeCSV(os.Stdout, result); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
		out.printResult(result)
		return
	}

	if opts.CSV {
		fmt.Fprintln(os.Stderr, "--csv requires an address argument")
		os.Exit(2)
	}

	runPromptLoop(os.Stdin, out)
}
