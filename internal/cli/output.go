package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// OutputFormatter renders command results in the selected format.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Print writes v as JSON or YAML, or calls text for human output.
func (f *OutputFormatter) Print(v any, text func(w io.Writer) error) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(f.Writer)
	}
}

func writeCards(w io.Writer, cards []domain.Card) error {
	for i, c := range cards {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, c.Front, indentContinuation(c.Back)); err != nil {
			return err
		}
	}
	return nil
}

func indentContinuation(s string) string {
	return strings.ReplaceAll(s, "\n", "\n   ")
}

func writeDeckTable(w io.Writer, decks []domain.SavedDeck) error {
	if len(decks) == 0 {
		_, err := fmt.Fprintln(w, "no saved decks")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCARDS\tCREATED")
	for _, d := range decks {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d.ID, d.Name, len(d.Cards), formatCreated(d.CreatedAt))
	}
	return tw.Flush()
}

func writeDeck(w io.Writer, d domain.SavedDeck) error {
	fmt.Fprintf(w, "%s\n", d.Name)
	if d.Topic != "" {
		fmt.Fprintf(w, "topic:   %s\n", d.Topic)
	}
	fmt.Fprintf(w, "id:      %s\n", d.ID)
	fmt.Fprintf(w, "created: %s\n\n", formatCreated(d.CreatedAt))
	return writeCards(w, d.Cards)
}

func writeGrade(w io.Writer, g domain.Grade) error {
	_, err := fmt.Fprintf(w, "%s (score %.2f)\n%s\n", g.Verdict, g.Score, g.Tips)
	return err
}

func formatCreated(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
