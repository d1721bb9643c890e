// Command mortier generates tesselation documents from the command line.
//
// Usage:
//
//	mortier render -family hyperbolic -p 7 -q 3 -depth 3 -o heptagons.svg
//	mortier batch -n 20 -dir out -format png
//	mortier import -i patterns.json -o patterns.db
//
// Resource ceilings, the pattern library and the log level come from the
// MORTIER_* environment variables.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/internal/config"

	_ "github.com/gogpu/mortier/recording/backends/raster"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	mortier.SetLogger(logger)
	slog.SetDefault(logger)

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&renderCmd{cfg: cfg}, "")
	subcommands.Register(&batchCmd{cfg: cfg}, "")
	subcommands.Register(&importCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
