package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mrlokans/lunch/internal/selector"
)

// RollCommand picks a random restaurant from a category.
type RollCommand struct {
	storeFlags
	Category     string
	AvoidRepeats bool
	NoRecord     bool

	Out io.Writer
}

func NewRollCommand() *RollCommand {
	return &RollCommand{}
}

func (cmd *RollCommand) ParseFlags(args []string) error {
	fs := newFlagSet("roll", "Pick a random restaurant from a category.")
	cmd.register(fs)
	fs.StringVar(&cmd.Category, "category", "", "Category to pick from: Cheap or Normal (required)")
	fs.BoolVar(&cmd.AvoidRepeats, "avoid-repeats", false, "Skip the previous pick when another restaurant is available")
	fs.BoolVar(&cmd.NoRecord, "no-record", false, "Do not store the pick in the history")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Category == "" {
		return fmt.Errorf("required flag -category not provided")
	}
	return nil
}

func (cmd *RollCommand) Run() error {
	db, err := cmd.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	cmds := newCommands(db, selector.Options{
		AvoidRepeats:  cmd.AvoidRepeats,
		RecordHistory: !cmd.NoRecord,
	})
	restaurant, err := cmds.RollLunch(context.Background(), cmd.Category)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdoutIfNil(cmd.Out), restaurant.Name)
	return nil
}
