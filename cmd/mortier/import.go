package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/patternstore"
	"github.com/gogpu/mortier/patternstore/sqlitestore"
)

type importCmd struct {
	inputPath  string
	outputPath string
	export     bool
}

func (c *importCmd) Name() string     { return "import" }
func (c *importCmd) Synopsis() string { return "copy a JSON pattern library into a SQLite database" }
func (c *importCmd) Usage() string {
	return "mortier import -o <db> [-i <json>]\nmortier import -export -i <db> [-o <json>]\n"
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path (empty imports the built-in library)")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.BoolVar(&c.export, "export", false, "Export a database as JSON instead (- or empty -o for stdout)")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log := mortier.Logger()
	if c.export {
		if err := exportPatterns(ctx, c.inputPath, c.outputPath); err != nil {
			log.Error("export patterns", "path", c.inputPath, "err", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if c.outputPath == "" {
		log.Error("missing -o database path")
		return subcommands.ExitUsageError
	}
	n, err := importPatterns(ctx, c.inputPath, c.outputPath)
	if err != nil {
		log.Error("import patterns", "path", c.inputPath, "err", err)
		return subcommands.ExitFailure
	}
	log.Info("patterns imported", "db", c.outputPath, "patterns", n)
	return subcommands.ExitSuccess
}

// importPatterns stores the patterns of the JSON file at in (the built-in
// library when empty) into the database at out.
func importPatterns(ctx context.Context, in, out string) (int, error) {
	var store patternstore.Store = patternstore.Builtin()
	if in != "" {
		s, err := patternstore.ReadFile(in)
		if err != nil {
			return 0, err
		}
		store = s
	}

	db, err := sqlitestore.Open(ctx, out)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	if err := sqlitestore.Migrate(ctx, db); err != nil {
		return 0, err
	}
	if err := sqlitestore.Save(ctx, db, store); err != nil {
		return 0, err
	}
	return len(store.IDs()), nil
}

func exportPatterns(ctx context.Context, in, out string) error {
	store, err := loadStore(ctx, in)
	if err != nil {
		return err
	}
	if out == "" || out == "-" {
		return patternstore.WriteJSON(os.Stdout, store)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := patternstore.WriteJSON(f, store); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
