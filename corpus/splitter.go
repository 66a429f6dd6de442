package corpus

import "strings"

var separators = []string{"\n\n", "\n", ". ", " "}

// Split breaks a long review into overlapping chunks of at most size
// characters, preferring to break at paragraph, line, sentence, then word
// boundaries. Texts at or under the size come back whole.
func Split(text string, size int, overlap int) []string {
	text = strings.TrimSpace(text)

	if size < 1 || len(text) <= size {
		if len(text) == 0 {
			return nil
		}
		return []string{text}
	}

	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string

	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, strings.TrimSpace(text[start:]))
			break
		}

		cut := breakPoint(text[start:end])
		if cut <= 0 {
			cut = size
		}

		chunk := strings.TrimSpace(text[start : start+cut])
		if len(chunk) > 0 {
			chunks = append(chunks, chunk)
		}

		next := start + cut - overlap
		if next <= start {
			next = start + cut
		}
		start = next
	}

	return chunks
}

// breakPoint finds the last natural boundary in the window, most
// meaningful separator first.
func breakPoint(window string) int {
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return idx + len(sep)
		}
	}
	return -1
}
