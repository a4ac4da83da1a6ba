// Package cli is the command-line front end: it turns arguments into a
// command, runs it against the persisted task list and reports the outcome
// as an exit code.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todo/internal/command"
	"github.com/Makepad-fr/todo/internal/config"
	"github.com/Makepad-fr/todo/internal/exitcode"
	"github.com/Makepad-fr/todo/internal/logging"
	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/store/jsonstore"
	"github.com/Makepad-fr/todo/internal/todo"
	"github.com/Makepad-fr/todo/internal/ui"
)

// Streams are the process's standard streams.
type Streams struct {
	In       io.Reader
	Out, Err io.Writer
}

// StdStreams returns os.Stdin, os.Stdout and os.Stderr.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// app carries what every subcommand needs once configuration is resolved.
type app struct {
	streams Streams
	version string

	cfg *config.Config
	ui  *ui.UI
	log *log.Logger
}

// Execute runs one invocation and returns the process exit code.
func Execute(args []string, streams Streams, version string) int {
	a := &app{streams: streams, version: version, log: logging.Discard()}
	// Until configuration is known, failures use the default theme.
	u, err := ui.New(streams.Out, streams.Err, "classic")
	if err != nil {
		fmt.Fprintln(streams.Err, err)
		return exitcode.Failure
	}
	a.ui = u

	root := a.rootCmd()
	root.SetArgs(args)
	err = root.Execute()
	if err != nil {
		a.report(err)
	}
	return ExitCode(err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny persistent task list",
		Long: `todo keeps an ordered task list in a JSON file.
Every invocation applies one command and saves the list before exiting.`,
		Version:       a.version,
		SilenceErrors: true,
		SilenceUsage:  true,
		// The root only runs when no subcommand matched.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return parseErrorf("", "unknown subcommand %q", args[0])
			}
			cmd.SetOut(a.streams.Err)
			_ = cmd.Help()
			return parseErrorf("", "missing subcommand")
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}
	root.SetIn(a.streams.In)
	root.SetOut(a.streams.Out)
	root.SetErr(a.streams.Err)
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ParseError{Cmd: subcommandName(cmd), Msg: "bad flag", Err: err}
	})

	pf := root.PersistentFlags()
	pf.StringP("file", "f", "", "task file (default \""+jsonstore.DefaultFile+"\")")
	pf.String("config", "", "config file (default \"$XDG_CONFIG_HOME/todo/config.yaml\")")
	pf.String("env-file", "", "dotenv file (default \".env\")")
	pf.String("theme", "", "output theme: "+strings.Join(ui.Themes, ", "))
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("debug", false, "shorthand for --log-level=debug")

	root.AddCommand(
		a.addCmd(),
		a.removeCmd(),
		a.modifyCmd(),
		a.printCmd(),
		a.browseCmd(),
		a.configCmd(),
	)
	return root
}

// configure resolves configuration, then rebuilds the UI and logger from it.
func (a *app) configure(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	dotEnv, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Options{
		ConfigFile: configFile,
		DotEnv:     dotEnv,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	u, err := ui.New(a.streams.Out, a.streams.Err, cfg.Theme)
	if err != nil {
		return err
	}
	logger, err := logging.New(a.streams.Err, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg, a.ui, a.log = cfg, u, logger
	a.log.Debug("configuration resolved", "source", cfg.Source, "file", cfg.File, "owner", cfg.Owner)
	return nil
}

// run applies one command to the persisted list. The list is saved on
// every path out of the command, including failures.
func (a *app) run(c command.Command[model.Text]) error {
	return a.withList(func(l *todo.List[model.Text]) error {
		a.log.Debug("applying command", "command", c)
		return l.Apply(c, a.streams.Out)
	})
}

func (a *app) withList(fn func(*todo.List[model.Text]) error) error {
	s := jsonstore.Session{
		Path:    a.cfg.File,
		Owner:   a.cfg.Owner,
		Options: []todo.Option{todo.WithRenderer(a.ui.Render)},
		OnLoad: func(path string, st jsonstore.Status, tasks int) {
			a.log.Debug("task file "+st.String(), "path", path, "tasks", tasks)
		},
		OnSave: func(path string, tasks int, err error) {
			if err != nil {
				a.log.Debug("save failed", "path", path, "err", err)
				return
			}
			a.log.Debug("task file saved", "path", path, "tasks", tasks)
		},
	}
	return jsonstore.Use(s, fn)
}

// report prints one diagnostic line per underlying failure.
func (a *app) report(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			a.ui.Fail(line)
		}
	}
	var ie *todo.IndexError
	if errors.As(err, &ie) {
		a.ui.Hint("Hint: run `todo print` to see valid positions")
	}
}

func subcommandName(cmd *cobra.Command) string {
	if cmd == nil || !cmd.HasParent() {
		return ""
	}
	return cmd.Name()
}
