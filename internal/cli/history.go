package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/mrlokans/lunch/internal/config"
	"github.com/mrlokans/lunch/internal/selector"
)

// HistoryCommand prints recent picks, or trims the history with -trim.
type HistoryCommand struct {
	storeFlags
	Limit int
	Trim  bool
	Keep  int

	Out io.Writer
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := newFlagSet("history", "Show recent picks, newest first.")
	cmd.register(fs)
	fs.IntVar(&cmd.Limit, "limit", config.DefaultHistoryRetention, "Number of picks to show (0 shows all)")
	fs.BoolVar(&cmd.Trim, "trim", false, "Delete all but the newest -keep picks instead of listing")
	fs.IntVar(&cmd.Keep, "keep", config.DefaultHistoryRetention, "Number of picks kept by -trim")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Limit < 0 {
		return fmt.Errorf("-limit must not be negative")
	}
	if cmd.Keep < 0 {
		return fmt.Errorf("-keep must not be negative")
	}
	return nil
}

func (cmd *HistoryCommand) Run() error {
	ctx := context.Background()
	out := stdoutIfNil(cmd.Out)

	db, err := cmd.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Trim {
		deleted, err := db.TrimHistory(ctx, cmd.Keep)
		if err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
		fmt.Fprintf(out, "Deleted %d picks, kept the newest %d\n", deleted, cmd.Keep)
		return nil
	}

	records, err := newCommands(db, selector.Options{}).History(ctx, cmd.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No picks yet")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PICKED AT\tNAME")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\n", r.PickedAt.Local().Format(time.DateTime), r.Name)
	}
	return tw.Flush()
}
