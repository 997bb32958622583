package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jordanella.com/language-gates/internal/catalog"
	"jordanella.com/language-gates/internal/config"
	"jordanella.com/language-gates/internal/lessons"
	"jordanella.com/language-gates/internal/logging"
	"jordanella.com/language-gates/internal/setup"
)

type cli struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect and manage language gate lesson catalogs",
		Long: `Inspect and manage the lesson catalogs shown by the language gates app.

Catalogs are read from the storage configured in Settings.ini. A language
without a stored catalog gets the built-in default on first use.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LogLevelWarn
			if c.verbose {
				level = logging.LogLevelDebug
			}
			logging.Configure(level, cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "Settings.ini", "Path to settings file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.seedCmd(),
		c.validateCmd(),
		c.resetCmd(),
		c.exportCmd(),
		c.importCmd(),
	)
	return root
}

// loadConfig falls back to defaults when the settings file does not exist
func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromINI(c.configPath)
	if err == nil {
		return cfg, nil
	}
	if _, statErr := os.Stat(c.configPath); errors.Is(statErr, os.ErrNotExist) {
		return config.NewDefaultConfig(), nil
	}
	return nil, err
}

func (c *cli) withStore(fn func(store *catalog.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	catalogs, err := setup.OpenCatalogs(cfg)
	if err != nil {
		return err
	}
	defer catalogs.Close()
	return fn(catalogs.Store)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored catalogs and when they were last written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store *catalog.Store) error {
				entries, err := store.List()
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No catalogs stored")
					return nil
				}
				for _, entry := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", entry.Code, entry.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
				}
				return nil
			})
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Print a language's lessons by tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store *catalog.Store) error {
				cat, err := store.Load(args[0])
				if err != nil {
					return err
				}
				printCatalog(cmd.OutOrStdout(), cat)
				return nil
			})
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [code...]",
		Short: "Create default catalogs for languages that have none",
		Long:  "Create default catalogs for the given languages, or for every configured gate when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := args
			if len(codes) == 0 {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				for _, gate := range cfg.Gates {
					codes = append(codes, gate.Code)
				}
			}

			return c.withStore(func(store *catalog.Store) error {
				for _, code := range codes {
					cat, err := store.Load(code)
					if err != nil {
						return fmt.Errorf("%s: %w", code, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d lessons\n", code, cat.Count())
				}
				return nil
			})
		},
	}
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <code>",
		Short: "Check that a stored catalog is well formed",
		Long:  "Check that a stored catalog is well formed. Nothing is written; a language without a stored catalog is an error.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store *catalog.Store) error {
				cat, err := store.Inspect(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d lessons)\n", args[0], cat.Count())
				return nil
			})
		},
	}
}

func (c *cli) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <code>",
		Short: "Overwrite a language's catalog with the built-in default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store *catalog.Store) error {
				if _, err := store.Reset(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: restored default lessons\n", args[0])
				return nil
			})
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <code>",
		Short: "Write a language's catalog to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := lessons.CodecFor(format)
			if err != nil {
				return err
			}
			return c.withStore(func(store *catalog.Store) error {
				cat, err := store.Load(args[0])
				if err != nil {
					return err
				}
				data, err := codec.Encode(cat)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json or yaml)")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <code> <file>",
		Short: "Replace a language's catalog with one read from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(args[1]), ".")
			}
			codec, err := lessons.CodecFor(format)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			cat, err := codec.Decode(data)
			if err != nil {
				return err
			}
			return c.withStore(func(store *catalog.Store) error {
				if err := store.Save(args[0], cat); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: imported %d lessons\n", args[0], cat.Count())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format (json or yaml, default from file extension)")
	return cmd
}

func printCatalog(w io.Writer, cat *lessons.Catalog) {
	for _, tier := range lessons.Tiers() {
		fmt.Fprintf(w, "%s\n", tier.Title())
		for _, lesson := range cat.Lessons(tier) {
			fmt.Fprintf(w, "  %-4s %s (%s)\n", lesson.ID, lesson.Title, lesson.Type)
		}
	}
}
