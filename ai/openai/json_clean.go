package openai

import "strings"

// sanitizeJSON prepares an LLM response for unmarshaling: it strips
// markdown code fences and removes trailing commas before closing
// brackets, the two malformations seen most often even with JSON mode on.
func sanitizeJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	return stripTrailingCommas(s)
}

// stripTrailingCommas removes commas that directly precede a closing
// brace or bracket, ignoring comma characters inside string literals.
func stripTrailingCommas(s string) string {
	var out []rune
	runes := []rune(s)
	inString := false
	escaped := false

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inString {
			out = append(out, ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			out = append(out, ch)
			continue
		}

		if ch == ',' {
			// Look ahead past whitespace for a closing delimiter.
			j := i + 1
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\n' || runes[j] == '\t' || runes[j] == '\r') {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue // drop the comma
			}
		}

		out = append(out, ch)
	}
	return string(out)
}
