package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/internal/config"
)

type renderCmd struct {
	cfg  *config.Config
	req  requestFlags
	seed uint64
	out  string
}

func (c *renderCmd) Name() string     { return "render" }
func (c *renderCmd) Synopsis() string { return "render one tesselation document" }
func (c *renderCmd) Usage() string {
	return "mortier render [-family <family>] [-pattern <id>] [-o <path>] [flags]\n"
}
func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	c.req.register(f)
	f.Uint64Var(&c.seed, "seed", 1, "Seed for pattern selection when -pattern is empty")
	f.StringVar(&c.out, "o", "-", "Output path (- for stdout)")
}

func (c *renderCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log := mortier.Logger()

	patterns := c.req.patterns
	if patterns == "" {
		patterns = c.cfg.Patterns
	}
	store, err := loadStore(ctx, patterns)
	if err != nil {
		log.Error("load patterns", "path", patterns, "err", err)
		return subcommands.ExitFailure
	}
	req, err := c.req.request(store, c.seed)
	if err != nil {
		log.Error("invalid request", "err", err)
		return subcommands.ExitUsageError
	}
	doc, err := c.req.engine(store, c.cfg.Limits).Generate(req)
	if err != nil {
		log.Error("generate", "err", err)
		return subcommands.ExitFailure
	}

	if c.out == "-" {
		_, err = os.Stdout.Write(doc.Data)
	} else {
		err = os.WriteFile(c.out, doc.Data, 0o644)
	}
	if err != nil {
		log.Error("write document", "path", c.out, "err", err)
		return subcommands.ExitFailure
	}
	log.Info("document written", "path", c.out, "format", doc.Format, "bytes", len(doc.Data))
	return subcommands.ExitSuccess
}
