package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/internal/config"
	"github.com/gogpu/mortier/recording"
)

type batchCmd struct {
	cfg   *config.Config
	req   requestFlags
	count int
	seed  uint64
	all   bool
	dir   string
}

func (c *batchCmd) Name() string     { return "batch" }
func (c *batchCmd) Synopsis() string { return "render many regular tesselations into a directory" }
func (c *batchCmd) Usage() string {
	return "mortier batch -dir <path> [-n <count> -seed <seed> | -all] [flags]\n"
}
func (c *batchCmd) SetFlags(f *flag.FlagSet) {
	c.req.register(f)
	f.IntVar(&c.count, "n", 10, "Number of documents")
	f.Uint64Var(&c.seed, "seed", 1, "First pattern selection seed; document i uses seed+i")
	f.BoolVar(&c.all, "all", false, "Render every pattern of the library once")
	f.StringVar(&c.dir, "dir", "out", "Output directory")
}

// batchJob is one document of a batch.
type batchJob struct {
	name    string
	pattern string
	seed    uint64
}

func (c *batchCmd) jobs(ids []string) []batchJob {
	if c.all {
		jobs := make([]batchJob, len(ids))
		for i, id := range ids {
			jobs[i] = batchJob{name: id, pattern: id}
		}
		return jobs
	}
	jobs := make([]batchJob, c.count)
	for i := range jobs {
		seed := c.seed + uint64(i)
		jobs[i] = batchJob{name: fmt.Sprintf("%04d", i), pattern: c.req.pattern, seed: seed}
	}
	return jobs
}

func (c *batchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		log.Error("create output directory", "path", c.dir, "err", err)
		return subcommands.ExitFailure
	}

	c.req.family = "regular"
	eng := c.req.engine(store, c.cfg.Limits)
	jobs := c.jobs(store.IDs())

	bar := progressbar.NewOptions(len(jobs), progressbar.OptionShowIts(), progressbar.OptionShowCount())
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			log.Error("batch interrupted", "err", err)
			return subcommands.ExitFailure
		}
		pattern := c.req.pattern
		c.req.pattern = job.pattern
		req, err := c.req.request(store, job.seed)
		c.req.pattern = pattern
		if err != nil {
			log.Error("invalid request", "err", err)
			return subcommands.ExitUsageError
		}
		doc, err := eng.Generate(req)
		if err != nil {
			log.Error("generate", "document", job.name, "err", err)
			return subcommands.ExitFailure
		}
		f, _ := recording.LookupFormat(doc.Format)
		path := filepath.Join(c.dir, job.name+f.Extension)
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			log.Error("write document", "path", path, "err", err)
			return subcommands.ExitFailure
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	log.Info("batch written", "dir", c.dir, "documents", len(jobs))
	return subcommands.ExitSuccess
}
