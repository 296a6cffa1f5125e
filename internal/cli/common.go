package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mrlokans/lunch/internal/commands"
	"github.com/mrlokans/lunch/internal/config"
	"github.com/mrlokans/lunch/internal/database"
	"github.com/mrlokans/lunch/internal/logging"
	"github.com/mrlokans/lunch/internal/selector"
)

// storeFlags are shared by every command that opens the database.
type storeFlags struct {
	DatabasePath string
	Verbose      bool
}

func (f *storeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.DatabasePath, "db", config.DefaultDatabasePath, "Path to the restaurant database file")
	fs.BoolVar(&f.Verbose, "verbose", false, "Enable verbose logging")
}

func (f *storeFlags) logger() *slog.Logger {
	level := slog.LevelWarn
	if f.Verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// open opens the database. seed controls first-run population of an empty store.
func (f *storeFlags) open(seed bool) (*database.Database, error) {
	cfg := database.DefaultConfig()
	cfg.Seed = seed
	cfg.Logger = f.logger()

	db, err := database.NewDatabase(f.DatabasePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newCommands(db *database.Database, opts selector.Options) *commands.Commands {
	return commands.New(db, selector.New(db, opts))
}

func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options]\n\n", os.Args[0], name)
		fmt.Fprintf(os.Stderr, "%s\n\n", usage)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	return fs
}

func stdoutIfNil(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
