package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.alis.build/alog"

	"github.com/jask/breadsheet/internal/clipboard"
	"github.com/jask/breadsheet/internal/config"
	"github.com/jask/breadsheet/internal/decode"
	"github.com/jask/breadsheet/internal/htmlview"
	"github.com/jask/breadsheet/internal/logging"
	"github.com/jask/breadsheet/internal/search"
	"github.com/jask/breadsheet/internal/sheet"
	"github.com/jask/breadsheet/internal/table"
	"github.com/jask/breadsheet/internal/tui"
)

// errNoMatches makes `search` exit 1 without an error message.
var errNoMatches = errors.New("no matches")

type globalOptions struct {
	configPath string
	logFile    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "breadsheet [file]",
		Short:         "Browse, search and copy cells from spreadsheets",
		Long:          "breadsheet opens an Excel or CSV file as a table in the terminal.\nClick a cell (or press enter) to copy it, press / to search.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $BREADSHEET_CONFIG or the user config dir)")
	pf.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level")

	root.AddCommand(newExportCmd(opts), newSearchCmd(opts), newConfigCmd(opts))
	return root
}

// loadConfig reads the config and applies flag overrides. Invalid values are
// logged and replaced; unreadable files are fatal.
func loadConfig(ctx context.Context, opts *globalOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil && !errors.Is(err, config.ErrInvalid) {
		return cfg, err
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}
	if lerr := logging.SetLevel(cfg.Log.Level); lerr != nil {
		alog.Warnf(ctx, "%v", lerr)
	}
	if err != nil {
		alog.Warnf(ctx, "config: %v", err)
	}
	return cfg, nil
}

// setupCLILogging keeps stdout clean for command output: logs go to the log
// file, to stderr with --debug, or nowhere.
func setupCLILogging(cfg config.Config, debug bool) (io.Closer, error) {
	if cfg.Log.File == "" && debug {
		return io.NopCloser(nil), nil
	}
	return logging.Redirect(cfg.Log.File)
}

func runTUI(ctx context.Context, opts *globalOptions, args []string) error {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "breadsheet")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else if _, err := logging.Redirect(""); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	deps := tui.Deps{
		Decoder:   decode.New(cfg.Files.AllowedExtensions, cfg.Files.MaxBytes),
		Clipboard: clipboard.NewSystem(clipboard.Mode(cfg.Clipboard.OSC52)),
		Dir:       cwd,
	}
	if len(args) == 1 {
		deps.Open = args[0]
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	alog.Infof(ctx, "starting ui in %s", cwd)
	p := tea.NewProgram(tui.New(ctx, cfg, deps), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// loadTable decodes path and renders it into a table with no clipboard.
func loadTable(ctx context.Context, cfg config.Config, path string) (*table.Table, sheet.Sheet, error) {
	dec := decode.New(cfg.Files.AllowedExtensions, cfg.Files.MaxBytes)
	s, err := dec.Load(ctx, path)
	if err != nil {
		alog.Errorf(ctx, "load %s: %v", path, err)
		return nil, sheet.Sheet{}, errors.New(decode.Message(err))
	}
	t := table.New(nil, nil)
	t.Render(s)
	return t, s, nil
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var output, query string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a spreadsheet as an HTML table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, opts)
			if err != nil {
				return err
			}
			closer, err := setupCLILogging(cfg, opts.debug)
			if err != nil {
				return err
			}
			defer closer.Close()

			t, s, err := loadTable(ctx, cfg, args[0])
			if err != nil {
				return err
			}
			if query != "" {
				res := search.Apply(t, query)
				alog.Infof(ctx, "export %s: %d matches for %q", s.Name, res.Matches, res.Query)
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			return htmlview.Render(w, t, htmlview.Options{Title: s.Name, Query: query})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "highlight cells containing this text")
	return cmd
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func newSearchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Print matching cells as A1<TAB>text; exits 1 when nothing matches",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, opts)
			if err != nil {
				return err
			}
			closer, err := setupCLILogging(cfg, opts.debug)
			if err != nil {
				return err
			}
			defer closer.Close()

			t, _, err := loadTable(ctx, cfg, args[0])
			if err != nil {
				return err
			}
			res := search.Apply(t, args[1])
			if res.Cleared() {
				return errors.New("empty query")
			}

			out := cmd.OutOrStdout()
			for _, c := range search.Matches(t) {
				fmt.Fprintf(out, "%s\t%s\n", c.Ref.A1(), lineBreaks.Replace(c.Text))
			}
			if res.Matches == 0 {
				if hint := search.Suggest(t, args[1]); hint != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "no matches for %q, closest: %q\n", res.Query, hint)
				}
				return errNoMatches
			}
			return nil
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
