package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/interchange"
)

// NewDecksCommand creates the decks command group.
func NewDecksCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Manage saved decks",
	}

	cmd.AddCommand(newDecksListCommand(rootOpts))
	cmd.AddCommand(newDecksShowCommand(rootOpts))
	cmd.AddCommand(newDecksDeleteCommand(rootOpts))
	cmd.AddCommand(newDecksExportCommand(rootOpts))
	cmd.AddCommand(newDecksImportCommand(rootOpts))

	return cmd
}

func newDecksListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved decks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				decks, err := env.Services.Decks.List(cmd.Context())
				if err != nil {
					return err
				}
				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Print(decks, func(w io.Writer) error {
					return writeDeckTable(w, decks)
				})
			})
		},
	}
}

func newDecksShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved deck with its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				deck, err := lookupDeck(cmd, env, args[0])
				if err != nil {
					return err
				}
				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Print(deck, func(w io.Writer) error {
					return writeDeck(w, deck)
				})
			})
		},
	}
}

func newDecksDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				if err := env.Services.Decks.DeleteByID(cmd.Context(), args[0]); err != nil {
					return err
				}
				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Print(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "deleted %s\n", args[0])
					return err
				})
			})
		},
	}
}

func newDecksExportCommand(rootOpts *RootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved deck as a JSON document",
		Long: `Export a saved deck as a portable JSON document.

The document is written to stdout, or to the file named by -o. Use "-o ."
to write into the current directory under the deck's safe file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				deck, err := lookupDeck(cmd, env, args[0])
				if err != nil {
					return err
				}
				doc, err := interchange.Export(deck)
				if err != nil {
					return err
				}

				if outPath == "" {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), string(doc))
					return err
				}
				if outPath == "." {
					outPath = interchange.ExportFileName(deck.Name)
				}
				if err := os.WriteFile(outPath, doc, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "exported %q to %s\n", deck.Name, outPath)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the document to this file")

	return cmd
}

func newDecksImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: `Import a deck from a JSON document ("-" reads stdin)`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, rootOpts, func(env *Env) error {
				deck, err := env.Services.Importer.Import(cmd.Context(), data)
				if err != nil {
					return describe(err)
				}
				out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
				return out.Print(deck, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "imported deck %s %q (%d cards)\n", deck.ID, deck.Name, len(deck.Cards))
					return err
				})
			})
		},
	}
}

func lookupDeck(cmd *cobra.Command, env *Env, id string) (domain.SavedDeck, error) {
	deck, ok, err := env.Services.Decks.GetByID(cmd.Context(), id)
	if err != nil {
		return domain.SavedDeck{}, err
	}
	if !ok {
		return domain.SavedDeck{}, fmt.Errorf("deck %q not found", id)
	}
	return deck, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
