package generation

import (
	"fmt"
	"strings"
)

func systemPrompt(count int, level string) string {
	var b strings.Builder
	b.WriteString("You are a careful flashcard creator.\n")
	fmt.Fprintf(&b, "- Produce %d concise Q/A cards for the topic.\n", count)
	fmt.Fprintf(&b, "- Level: %s.\n", level)
	b.WriteString("- Prefer atomic facts or short how-tos.\n")
	b.WriteString("- Avoid hallucinations; if unsure, keep generic or skip.\n")
	b.WriteString(`- Return JSON with "cards":[{"front":"...","back":"..."}] (no extra commentary).`)
	return b.String()
}

func userPrompt(topic string) string {
	return "Topic: " + topic
}
