// Package interchange converts saved decks to and from the portable
// "flashcard-tutor.v1" JSON document.
package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// SchemaTag identifies the interchange document format.
const SchemaTag = "flashcard-tutor.v1"

const maxFileNameLen = 40

// document is the exported shape. Field order is the on-disk order.
type document struct {
	Name      string        `json:"name"`
	Topic     string        `json:"topic"`
	CreatedAt int64         `json:"createdAt"`
	Cards     []domain.Card `json:"cards"`
	Schema    string        `json:"schema"`
}

// Export renders deck as a pretty-printed interchange document with
// markup characters left as typed. The deck's own id is not part of
// the document.
func Export(deck domain.SavedDeck) ([]byte, error) {
	cards := deck.Cards
	if cards == nil {
		cards = []domain.Card{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{
		Name:      deck.Name,
		Topic:     deck.Topic,
		CreatedAt: deck.CreatedAt,
		Cards:     cards,
		Schema:    SchemaTag,
	}); err != nil {
		return nil, fmt.Errorf("encode deck: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ExportFileName derives a download file name from a deck name.
func ExportFileName(name string) string {
	safe := unsafeFileChars.ReplaceAllString(name, "_")
	if len(safe) > maxFileNameLen {
		safe = safe[:maxFileNameLen]
	}
	if safe == "" {
		safe = "deck"
	}
	return safe + ".json"
}
