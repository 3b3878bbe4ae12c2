// Command resume2pdf renders a JSON resume through an HTML template and
// prints it to PDF with headless Chrome.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain parses args, runs the pipeline, and returns the exit code.
func runMain(args []string, env *Environment) int {
	f, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	if f.version {
		fmt.Fprintf(env.Stdout, "resume2pdf %s\n", Version)
		return ExitSuccess
	}

	p := newPrinter(env, f)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(p.Verbosef))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, f, env, p); err != nil {
		p.Errorf("%v", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
