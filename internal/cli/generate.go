package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/deckstore"
	"github.com/heartmarshall/flashcard-tutor/internal/service/generation"
)

type generateOptions struct {
	topic string
	level string
	cards float64
	save  bool
	name  string
}

type generateResult struct {
	Cards []domain.Card     `json:"cards"          yaml:"cards"`
	Deck  *domain.SavedDeck `json:"deck,omitempty" yaml:"deck,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a deck of flashcards for a topic",
		Long: `Generate question/answer flashcards for a topic.

The card count is clamped to 5..20. With --save the cards are stored as a
new deck named --name, or "<topic> (<level>)" when no name is given.`,
		Example: `  flashcards generate --topic "Binary search" --level intermediate --cards 8
  flashcards generate --topic "Photosynthesis" --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, rootOpts, func(env *Env) error {
				return runGenerate(cmd, rootOpts, env, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.topic, "topic", "t", "", "deck topic (required)")
	cmd.Flags().StringVarP(&opts.level, "level", "l", "beginner", "difficulty level")
	cmd.Flags().Float64VarP(&opts.cards, "cards", "n", domain.DefaultCards, "number of cards (5-20)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the generated deck")
	cmd.Flags().StringVar(&opts.name, "name", "", "deck name used with --save")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func runGenerate(cmd *cobra.Command, rootOpts *RootOptions, env *Env, opts *generateOptions) error {
	if err := env.requireLLM(); err != nil {
		return err
	}
	ctx := cmd.Context()

	cards, err := env.Services.Generator.Generate(ctx, generation.GenerateInput{
		Topic:  opts.topic,
		Level:  opts.level,
		NCards: opts.cards,
	})
	if err != nil {
		return describe(err)
	}

	result := generateResult{Cards: cards}
	if opts.save {
		name := strings.TrimSpace(opts.name)
		if name == "" {
			name = generation.SuggestedDeckName(opts.topic, opts.level)
		}
		deck, err := env.Services.Decks.Save(ctx, deckstore.SaveInput{
			Name:  name,
			Topic: strings.TrimSpace(opts.topic),
			Cards: cards,
		})
		if err != nil {
			return describe(err)
		}
		result.Deck = deck
	}

	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	return out.Print(result, func(w io.Writer) error {
		if len(cards) == 0 {
			fmt.Fprintln(w, "the model returned no usable cards")
		}
		if err := writeCards(w, cards); err != nil {
			return err
		}
		if result.Deck != nil {
			fmt.Fprintf(w, "\nsaved deck %s %q\n", result.Deck.ID, result.Deck.Name)
		}
		return nil
	})
}
