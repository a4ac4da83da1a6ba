package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todo/internal/command"
	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/todo"
	"github.com/Makepad-fr/todo/internal/tui"
)

// parser turns a subcommand's positional arguments into a command.
type parser func(args []string) (command.Command[model.Text], error)

// argsFrom validates positional arguments by parsing them, so that bad input
// is rejected before configuration or the task file are touched.
func argsFrom(p parser) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		_, err := p(args)
		return err
	}
}

// mutating wraps a parser into a RunE that applies the command and
// confirms with msg.
func (a *app) mutating(p parser, msg string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := p(args)
		if err != nil {
			return err
		}
		if err := a.run(c); err != nil {
			return err
		}
		a.ui.OK(msg)
		return nil
	}
}

func (a *app) addCmd() *cobra.Command {
	p := func(args []string) (command.Command[model.Text], error) {
		item, err := parseText("add", args)
		if err != nil {
			return command.Command[model.Text]{}, err
		}
		return command.Add(item), nil
	}
	return &cobra.Command{
		Use:     "add <text...>",
		Short:   "Add a task to the end of the list",
		Example: `  todo add "Buy milk"` + "\n" + `  todo add walk the dog`,
		Args:    argsFrom(p),
		RunE:    a.mutating(p, "added"),
	}
}

func (a *app) removeCmd() *cobra.Command {
	p := func(args []string) (command.Command[model.Text], error) {
		if len(args) != 1 {
			return command.Command[model.Text]{}, parseErrorf("rm", "usage: todo rm <position>")
		}
		pos, err := parsePosition("rm", args[0])
		if err != nil {
			return command.Command[model.Text]{}, err
		}
		return command.Remove[model.Text](pos), nil
	}
	return &cobra.Command{
		Use:     "rm <position>",
		Aliases: []string{"remove"},
		Short:   "Remove the task at a 1-based position",
		Example: "  todo rm 3",
		Args:    argsFrom(p),
		RunE:    a.mutating(p, "removed"),
	}
}

func (a *app) modifyCmd() *cobra.Command {
	var newText string
	p := func(args []string) (command.Command[model.Text], error) {
		var textArgs []string
		switch {
		case newText != "" && len(args) == 1:
			textArgs = []string{newText}
		case newText == "" && len(args) >= 2:
			textArgs = args[1:]
		default:
			return command.Command[model.Text]{}, parseErrorf("modify", "usage: todo modify <position> <text...> | todo modify <position> --new <text>")
		}
		pos, err := parsePosition("modify", args[0])
		if err != nil {
			return command.Command[model.Text]{}, err
		}
		item, err := parseText("modify", textArgs)
		if err != nil {
			return command.Command[model.Text]{}, err
		}
		return command.Modify(pos, item), nil
	}
	cmd := &cobra.Command{
		Use:     "modify <position> <text...>",
		Aliases: []string{"mod", "edit"},
		Short:   "Replace the task at a 1-based position",
		Example: `  todo modify 2 "Buy oat milk"` + "\n" + `  todo modify 2 -n "Buy oat milk"`,
		Args:    argsFrom(p),
		RunE:    a.mutating(p, "modified"),
	}
	cmd.Flags().StringVarP(&newText, "new", "n", "", "new task text")
	return cmd
}

func (a *app) printCmd() *cobra.Command {
	p := func(args []string) (command.Command[model.Text], error) {
		if len(args) != 0 {
			return command.Command[model.Text]{}, parseErrorf("print", "takes no arguments, got %q", strings.Join(args, " "))
		}
		return command.Print[model.Text](), nil
	}
	return &cobra.Command{
		Use:     "print",
		Aliases: []string{"ls", "list"},
		Short:   "Print the task list",
		Args:    argsFrom(p),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := p(args)
			if err != nil {
				return err
			}
			return a.run(c)
		},
	}
}

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "browse",
		Aliases: []string{"tui"},
		Short:   "Browse and edit the list interactively",
		Long: `Opens a full-screen list. Keys: a add, e edit, d remove, / filter, q quit.
Changes are saved when the browser exits.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return parseErrorf("browse", "takes no arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var applied int
			err := a.withList(func(l *todo.List[model.Text]) error {
				n, err := tui.Run(l, tui.Options{
					In:    a.streams.In,
					Out:   a.streams.Out,
					Theme: a.ui.Theme(),
					OnApply: func(c command.Command[model.Text]) {
						a.log.Debug("applied command", "command", c)
					},
				})
				applied = n
				return err
			})
			if err != nil {
				return err
			}
			if applied > 0 {
				a.ui.OK("saved")
			}
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration as YAML",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return parseErrorf("config", "takes no arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.cfg.Source != "" {
				if _, err := out.Write([]byte("# source: " + a.cfg.Source + "\n")); err != nil {
					return err
				}
			}
			_, err = out.Write(b)
			return err
		},
	}
}

// parsePosition reads a display position. Range checks belong to the list;
// only non-numbers are rejected here.
func parsePosition(cmd, s string) (command.Position, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, parseErrorf(cmd, "position must be a whole number, got %q", s)
	}
	return command.Position(n), nil
}

func parseText(cmd string, args []string) (model.Text, error) {
	if len(args) == 0 {
		return "", parseErrorf(cmd, "missing task text")
	}
	t := model.NewText(strings.Join(args, " "))
	if t.Empty() {
		return "", parseErrorf(cmd, "empty task text")
	}
	return t, nil
}
