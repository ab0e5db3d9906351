package gdl

import "strings"

// FormatSource normalizes GDL source: line endings become \n, trailing
// whitespace is trimmed, block bodies are re-indented two spaces per brace
// depth, and the file ends with exactly one newline. Formatting is purely
// textual and never fails; malformed source comes back normalized but
// otherwise untouched.
func FormatSource(source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	depth := 0
	inBlockComment := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			lines[i] = ""
			continue
		}

		lineDepth := depth
		if !inBlockComment && strings.HasPrefix(trimmed, "}") {
			lineDepth--
		}
		if lineDepth < 0 {
			lineDepth = 0
		}
		lines[i] = strings.Repeat("  ", lineDepth) + trimmed

		opens, closes, stillInComment := braceDelta(trimmed, inBlockComment)
		inBlockComment = stillInComment
		depth += opens - closes
		if depth < 0 {
			depth = 0
		}
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimRight(joined, "\n")
	return joined + "\n"
}

// braceDelta counts structural braces on one line, skipping string literals
// and comments so quoted braces don't shift indentation.
func braceDelta(line string, inBlockComment bool) (opens, closes int, stillInComment bool) {
	runes := []rune(line)
	var quote rune

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inBlockComment {
			if r == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}

		if quote != 0 {
			switch r {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch r {
		case '"', '\'':
			quote = r
		case '/':
			if i+1 < len(runes) {
				switch runes[i+1] {
				case '/':
					return opens, closes, false
				case '*':
					inBlockComment = true
					i++
				}
			}
		case '{':
			opens++
		case '}':
			closes++
		}
	}

	return opens, closes, inBlockComment
}
