package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mrlokans/lunch/internal/commands"
	"github.com/mrlokans/lunch/internal/entities"
	"github.com/mrlokans/lunch/internal/selector"
)

// ListCommand prints every restaurant, optionally limited to one category.
type ListCommand struct {
	storeFlags
	Category string

	Out io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := newFlagSet("list", "List restaurants.")
	cmd.register(fs)
	fs.StringVar(&cmd.Category, "category", "", "Only list restaurants in this category (Cheap or Normal)")
	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	ctx := context.Background()
	out := stdoutIfNil(cmd.Out)

	db, err := cmd.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	var restaurants []entities.Restaurant
	if cmd.Category != "" {
		category, err := entities.ParseCategory(cmd.Category)
		if err != nil {
			return err
		}
		restaurants, err = db.ListByCategory(ctx, category)
		if err != nil {
			return err
		}
	} else {
		restaurants, err = newCommands(db, selector.Options{}).ListRestaurants(ctx)
		if err != nil {
			return err
		}
	}

	if len(restaurants) == 0 {
		fmt.Fprintln(out, commands.NoRestaurantsMessage)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY")
	for _, r := range restaurants {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Category)
	}
	return tw.Flush()
}

// AddCommand adds a restaurant.
type AddCommand struct {
	storeFlags
	Name     string
	Category string

	Out io.Writer
}

func NewAddCommand() *AddCommand {
	return &AddCommand{}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := newFlagSet("add", "Add a restaurant.")
	cmd.register(fs)
	fs.StringVar(&cmd.Name, "name", "", "Restaurant name (required)")
	fs.StringVar(&cmd.Category, "category", "", "Category: Cheap or Normal (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	if cmd.Category == "" {
		return fmt.Errorf("required flag -category not provided")
	}
	return nil
}

func (cmd *AddCommand) Run() error {
	db, err := cmd.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := newCommands(db, selector.Options{}).AddRestaurant(context.Background(), cmd.Name, cmd.Category); err != nil {
		return err
	}
	fmt.Fprintf(stdoutIfNil(cmd.Out), "Added %s\n", cmd.Name)
	return nil
}

// UpdateCommand renames and/or recategorizes a restaurant.
type UpdateCommand struct {
	storeFlags
	Name     string
	NewName  string
	Category string

	Out io.Writer
}

func NewUpdateCommand() *UpdateCommand {
	return &UpdateCommand{}
}

func (cmd *UpdateCommand) ParseFlags(args []string) error {
	fs := newFlagSet("update", "Rename or recategorize a restaurant. History follows a rename.")
	cmd.register(fs)
	fs.StringVar(&cmd.Name, "name", "", "Current restaurant name (required)")
	fs.StringVar(&cmd.NewName, "new-name", "", "New name (defaults to the current name)")
	fs.StringVar(&cmd.Category, "category", "", "Category: Cheap or Normal (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	if cmd.Category == "" {
		return fmt.Errorf("required flag -category not provided")
	}
	if cmd.NewName == "" {
		cmd.NewName = cmd.Name
	}
	return nil
}

func (cmd *UpdateCommand) Run() error {
	db, err := cmd.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := newCommands(db, selector.Options{}).UpdateRestaurant(context.Background(), cmd.Name, cmd.NewName, cmd.Category); err != nil {
		return err
	}
	fmt.Fprintf(stdoutIfNil(cmd.Out), "Updated %s\n", cmd.NewName)
	return nil
}

// DeleteCommand removes a restaurant. Its history is kept.
type DeleteCommand struct {
	storeFlags
	Name string

	Out io.Writer
}

func NewDeleteCommand() *DeleteCommand {
	return &DeleteCommand{}
}

func (cmd *DeleteCommand) ParseFlags(args []string) error {
	fs := newFlagSet("delete", "Delete a restaurant.")
	cmd.register(fs)
	fs.StringVar(&cmd.Name, "name", "", "Restaurant name (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	return nil
}

func (cmd *DeleteCommand) Run() error {
	db, err := cmd.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := newCommands(db, selector.Options{}).DeleteRestaurant(context.Background(), cmd.Name); err != nil {
		return err
	}
	fmt.Fprintf(stdoutIfNil(cmd.Out), "Deleted %s\n", cmd.Name)
	return nil
}
