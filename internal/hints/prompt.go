package hints

import (
	"fmt"
	"strings"
)

const systemPrompt = `You help a student memorize Latin vocabulary with flashcards. The student sees the Latin headword and must recall its translation.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Headword: %s\n", in.Headword)
	if in.Forms != "" {
		fmt.Fprintf(&b, "Forms: %s\n", in.Forms)
	}
	fmt.Fprintf(&b, "Translation: %s\n", in.Translation)

	b.WriteString(`
Instructions:
1. Write a memory aid of at most two sentences that connects the headword to the translation. Sound-alikes, images and cognates all work.
2. Write the memory aid in the same language as the translation.
3. In "note", name one related word from a modern language if a clear one exists, otherwise leave it empty.
4. Plain text only. No markdown.`)

	return b.String()
}
