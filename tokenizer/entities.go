package tokenizer

import "strings"

// decodeNbsp expands &nbsp; (and its non-semicolon-terminated form,
// &nbsp, which browsers also accept) to replacement wherever it appears in
// text. No other named or numeric character reference is recognized — §4.1.2
// deliberately narrows entity handling to this single, common case instead
// of the full HTML5 entity table.
func decodeNbsp(text, replacement string) string {
	if !strings.Contains(text, "&nbsp") {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], "&nbsp;") {
			sb.WriteString(replacement)
			i += len("&nbsp;")
			continue
		}
		if strings.HasPrefix(text[i:], "&nbsp") {
			sb.WriteString(replacement)
			i += len("&nbsp")
			continue
		}
		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}
