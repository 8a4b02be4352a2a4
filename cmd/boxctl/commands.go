package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/boxbuddy/boxbuddy/internal/config"
	"github.com/boxbuddy/boxbuddy/internal/dispatch"
	"github.com/boxbuddy/boxbuddy/internal/history"
	"github.com/boxbuddy/boxbuddy/internal/history/sqlite"
	"github.com/boxbuddy/boxbuddy/internal/logging"
	"github.com/boxbuddy/boxbuddy/internal/model"
	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// HistoryDisabled turns the history store off when used as history_db
const HistoryDisabled = "off"

// DefaultHistoryLimit is how many entries the history command prints
const DefaultHistoryLimit = 20

var errNotInteractive = errors.New("refusing to delete without --yes when input is not a terminal")

// environment is everything the commands touch outside the process
type environment struct {
	runner      platform.Runner
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive func() bool
}

func defaultEnvironment() *environment {
	return &environment{
		runner: platform.NewExecRunner(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		interactive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

type command struct {
	env    *environment
	global *GlobalFlags
	v      *viper.Viper
}

// session is the per-invocation wiring built from config
type session struct {
	service *dispatch.Service
	store   history.Store
	closers []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

// buildRoot creates the root command
func buildRoot(env *environment) *cobra.Command {
	globalFlags := &GlobalFlags{}
	createFlags := &CreateFlags{}
	deleteFlags := &DeleteFlags{}
	historyFlags := &HistoryFlags{}

	c := &command{env: env, global: globalFlags, v: config.NewViper()}

	root := createRootCommand(c)
	root.AddCommand(
		createListCommand(c),
		createCreateCommand(c, createFlags),
		createEnterCommand(c),
		createUpgradeCommand(c),
		createDeleteCommand(c, deleteFlags),
		createHistoryCommand(c, historyFlags),
	)
	return root
}

// createRootCommand creates the root command and binds config-backed flags
func createRootCommand(c *command) *cobra.Command {
	root := &cobra.Command{
		Use:   "boxctl",
		Short: "Manage distrobox containers from the command line",
		Long: `boxctl lists and manages distrobox containers using the same
dispatcher as the BoxBuddy desktop application.

Examples:
  boxctl list
  boxctl create dev --image quay.io/toolbx/arch-toolbox:latest
  boxctl enter dev
  boxctl delete dev --yes`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.env.stdout)
	root.SetErr(c.env.stderr)
	root.SetIn(c.env.stdin)

	flags := root.PersistentFlags()
	flags.StringVar(&c.global.ConfigPath, "config", "", "path to YAML config file (optional)")
	flags.BoolVarP(&c.global.Verbose, "verbose", "v", false, "also log to stderr")
	flags.String(config.FileKeyTool, "", "distrobox executable")
	flags.String(config.FileKeyTerminal, "", "terminal emulator for enter and create")
	flags.String("history-db", "", `history database path, "off" to disable`)
	flags.String("log-file", "", "log file path")

	for key, flag := range map[string]string{
		config.FileKeyTool:      config.FileKeyTool,
		config.FileKeyTerminal:  config.FileKeyTerminal,
		config.FileKeyHistoryDB: "history-db",
		config.FileKeyLogFile:   "log-file",
	} {
		if err := c.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	return root
}

func createListCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List boxes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.List(cmd.Context())
		},
	}
}

func createCreateCommand(c *command, flags *CreateFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a box in a terminal",
		Long: `Create a box. distrobox asks interactive questions while pulling the
image, so creation runs inside a terminal emulator.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Create(args[0], *flags)
		},
	}
	cmd.Flags().StringVar(&flags.Image, "image", "", "image to create the box from (default: distrobox default)")
	return cmd
}

func createEnterCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "enter NAME",
		Short: "Open a terminal inside a box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Handle(model.ActionOpenTerminal, args[0], nil)
		},
	}
}

func createUpgradeCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade NAME",
		Short: "Upgrade the packages inside a box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Handle(model.ActionUpgrade, args[0], nil)
		},
	}
}

func createDeleteCommand(c *command, flags *DeleteFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a box",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Delete(args[0], *flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func createHistoryCommand(c *command, flags *HistoryFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently dispatched actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.History(cmd.Context(), *flags)
		},
	}
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", DefaultHistoryLimit, "number of entries, 0 for all")
	return cmd
}

// open loads config and wires logging, the dispatcher and history
func (c *command) open() (*session, error) {
	fc, err := config.LoadFile(c.v, c.global.ConfigPath)
	if err != nil {
		return nil, err
	}

	s := &session{}
	logCloser, err := logging.Setup(logging.Config{File: fc.LogFile, Quiet: !c.global.Verbose})
	s.closers = append(s.closers, logCloser)
	if err != nil {
		_, _ = fmt.Fprintln(c.env.stderr, "Warning:", err)
	}

	s.service = dispatch.NewService(platform.NewDistrobox(fc.Tool, c.env.runner))
	s.service.SetTerminal(fc.Terminal)

	if fc.HistoryDB != "" && fc.HistoryDB != HistoryDisabled {
		if fc.HistoryDB != ":memory:" {
			if err := platform.CreateDirectoryIfNotExists(filepath.Dir(fc.HistoryDB)); err != nil {
				s.Close()
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
		store, err := sqlite.New(fc.HistoryDB)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.store = store
		s.closers = append(s.closers, store)
		s.service.SetRecorder(store)
	}

	return s, nil
}

// List prints the registry
func (c *command) List(ctx context.Context) error {
	s, err := c.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	if !s.service.IsInstalled() {
		return platform.ErrToolUnavailable
	}
	boxes, err := s.service.ListBoxes(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.env.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tDISTRO\tIMAGE")
	for _, b := range boxes {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Name, b.DisplayStatus(), b.Distro, b.Image)
	}
	return w.Flush()
}

// Create hands creation off to a terminal
func (c *command) Create(name string, flags CreateFlags) error {
	return c.handleBox(model.ActionCreate, model.Box{Name: name, Image: flags.Image}, nil)
}

// Delete asks for confirmation unless --yes was given
func (c *command) Delete(name string, flags DeleteFlags) error {
	if !flags.Yes && !c.env.interactive() {
		return errNotInteractive
	}

	confirm := func(row dispatch.RowContext, respond func(dispatch.Response)) {
		if flags.Yes {
			respond(dispatch.ResponseDelete)
			return
		}
		respond(c.prompt(row.Box.Name))
	}
	return c.Handle(model.ActionDelete, name, confirm)
}

// prompt reads a y/N answer; anything but yes cancels
func (c *command) prompt(name string) dispatch.Response {
	_, _ = fmt.Fprintf(c.env.stdout, "Really delete %s? [y/N]: ", name)
	line, _ := bufio.NewReader(c.env.stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return dispatch.ResponseDelete
	default:
		_, _ = fmt.Fprintln(c.env.stdout, "Cancelled")
		return dispatch.ResponseCancel
	}
}

// Handle runs an action for a box through the controller
func (c *command) Handle(action model.Action, name string, confirm dispatch.Confirmer) error {
	return c.handleBox(action, model.Box{Name: name}, confirm)
}

func (c *command) handleBox(action model.Action, box model.Box, confirm dispatch.Confirmer) error {
	if err := dispatch.CheckBoxName(box.Name); err != nil {
		return fmt.Errorf("invalid box name %q: %w", box.Name, err)
	}

	s, err := c.open()
	if err != nil {
		return err
	}
	defer s.Close()

	notifier := &cliNotifier{out: c.env.stdout}
	controller := dispatch.NewController(s.service, notifier)
	controller.SetConfirmer(confirm)
	controller.Handle(action, dispatch.RowContext{Box: box})
	return notifier.err
}

// History prints recent actions
func (c *command) History(ctx context.Context, flags HistoryFlags) error {
	s, err := c.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if s.store == nil {
		return errors.New("history is disabled")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := s.store.List(ctx, flags.Limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.env.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tACTION\tBOX\tTOOK\tRESULT")
	for _, e := range entries {
		result := "ok"
		if !e.Success {
			result = "failed: " + e.Detail
		}
		took := e.Duration().Round(time.Millisecond)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", humanize.Time(e.StartedAt), e.Action, e.Box, took, result)
	}
	return w.Flush()
}

// cliNotifier prints progress and keeps the failure for the exit status
type cliNotifier struct {
	out io.Writer
	err error
}

func (n *cliNotifier) Started(action model.Action, row dispatch.RowContext) {
	switch action {
	case model.ActionUpgrade:
		_, _ = fmt.Fprintf(n.out, "Upgrading %s...\n", row.Box.Name)
	case model.ActionDelete:
		_, _ = fmt.Fprintf(n.out, "Deleting %s...\n", row.Box.Name)
	}
}

func (n *cliNotifier) Succeeded(action model.Action, row dispatch.RowContext) {
	switch action {
	case model.ActionUpgrade:
		_, _ = fmt.Fprintf(n.out, "Upgraded %s\n", row.Box.Name)
	case model.ActionDelete:
		_, _ = fmt.Fprintf(n.out, "Deleted %s\n", row.Box.Name)
	case model.ActionOpenTerminal:
		_, _ = fmt.Fprintf(n.out, "Opened a terminal in %s\n", row.Box.Name)
	case model.ActionCreate:
		_, _ = fmt.Fprintf(n.out, "Creating %s in a new terminal\n", row.Box.Name)
	}
}

func (n *cliNotifier) Failed(_ model.Action, _ dispatch.RowContext, err error) {
	n.err = err
}
