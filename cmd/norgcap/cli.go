package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/andreadev-it/norgcap/internal/errors"
	"github.com/andreadev-it/norgcap/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(app *ops.App) *cli.App {
	a := &cli.App{
		Name:    "norgcap",
		Usage:   "Quick capture for outlined notes",
		Version: Version,
		Commands: []*cli.Command{
			runCmd(app),
			listCmd(app),
			showCmd(app),
			workspaceCmd(app),
			historyCmd(app),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	a.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return a
}

// runCmd creates the run command.
func runCmd(app *ops.App) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Execute a named capture",
		ArgsUsage: "<name>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("capture name is required"))
			}

			output, err := app.RunCapture(c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(app *ops.App) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List configured capture names",
		Action: func(c *cli.Context) error {
			return outputJSON(app.ListCaptures())
		},
	}
}

// showCmd creates the show command.
func showCmd(app *ops.App) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a capture definition with defaults resolved",
		ArgsUsage: "<name>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("capture name is required"))
			}

			output, err := app.ShowCapture(c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// workspaceCmd creates the workspace command.
// Without an argument it reports the active workspace; with one it switches.
func workspaceCmd(app *ops.App) *cli.Command {
	return &cli.Command{
		Name:      "workspace",
		Usage:     "Show or switch the active workspace",
		ArgsUsage: "[name]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				output, err := app.CurrentWorkspace()
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := app.SwitchWorkspace(c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(app *ops.App) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent capture invocations, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "capture", Aliases: []string{"c"}, Usage: "Only show invocations of this capture"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Maximum number of entries"},
		},
		Action: func(c *cli.Context) error {
			output, err := app.History(c.String("capture"), c.Int("limit"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// outputJSON prints data as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if capErr, ok := err.(*errors.CaptureError); ok {
		msg := fmt.Sprintf("[%s] %s", capErr.Code, capErr.Message)
		if len(capErr.Details) > 0 {
			parts := make([]string, 0, len(capErr.Details))
			for k, v := range capErr.Details {
				parts = append(parts, fmt.Sprintf("%s=%v", k, v))
			}
			msg += " (" + strings.Join(parts, " ") + ")"
		}
		return cli.Exit(msg, 1)
	}
	return cli.Exit(err.Error(), 1)
}
