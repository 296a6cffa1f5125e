package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/lunch/internal/cli"
	"github.com/mrlokans/lunch/internal/config"
	"github.com/mrlokans/lunch/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "list":
		cmd = cli.NewListCommand()
	case "add":
		cmd = cli.NewAddCommand()
	case "update":
		cmd = cli.NewUpdateCommand()
	case "delete":
		cmd = cli.NewDeleteCommand()
	case "roll":
		cmd = cli.NewRollCommand()
	case "seed":
		cmd = cli.NewSeedCommand()
	case "history":
		cmd = cli.NewHistoryCommand()

	case "version":
		fmt.Printf("lunch %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  list      List restaurants\n")
	fmt.Fprintf(os.Stderr, "  add       Add a restaurant\n")
	fmt.Fprintf(os.Stderr, "  update    Rename or recategorize a restaurant\n")
	fmt.Fprintf(os.Stderr, "  delete    Delete a restaurant\n")
	fmt.Fprintf(os.Stderr, "  roll      Pick a random restaurant from a category\n")
	fmt.Fprintf(os.Stderr, "  seed      Populate an empty database with the default restaurants\n")
	fmt.Fprintf(os.Stderr, "  history   Show or trim recent picks\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
