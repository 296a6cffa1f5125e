package cli

import (
	"context"
	"fmt"
	"io"
)

// SeedCommand populates an empty database with the bundled restaurant list.
type SeedCommand struct {
	storeFlags

	Out io.Writer
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := newFlagSet("seed", "Populate an empty database with the default restaurants. A non-empty database is left alone.")
	cmd.register(fs)
	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	db, err := cmd.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	inserted, err := db.Seed(context.Background())
	if err != nil {
		return fmt.Errorf("failed to seed restaurants: %w", err)
	}

	out := stdoutIfNil(cmd.Out)
	if inserted == 0 {
		fmt.Fprintln(out, "Database already has restaurants, nothing seeded")
		return nil
	}
	fmt.Fprintf(out, "Seeded %d restaurants\n", inserted)
	return nil
}
