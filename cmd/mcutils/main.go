package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

type subcommand struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) error
}

var commands = []subcommand{
	{"slime", "report whether a chunk is a slime chunk", runSlime},
	{"search", "find the densest window of slime chunks", runSearch},
	{"flower", "classify or locate flowers", runFlower},
	{"bedrock", "print a slice of a bedrock layer", runBedrock},
	{"nbt-dump", "pretty-print an NBT file", runNBTDump},
	{"serve", "serve searches over a websocket", runServe},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: mcutils <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	name, args := os.Args[1], os.Args[2:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		log := newLogger(slog.LevelInfo)
		if err := c.run(ctx, args, os.Stdout, log); err != nil {
			if err == flag.ErrHelp {
				os.Exit(2)
			}
			log.Error(name+" failed", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage(os.Stderr)
	os.Exit(2)
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// explicitFlags returns the names of flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
