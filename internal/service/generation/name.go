package generation

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// SuggestedDeckName is the name offered when a freshly generated deck is
// saved without one: "<topic> (<level>)".
func SuggestedDeckName(topic, level string) string {
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(topic), domain.NormalizeLevel(level))
}
