package format

import "strings"

// token is one segment of a date pattern: either a run of one pattern
// letter or literal text.
type token struct {
	letter  byte // 0 for literal text
	count   int
	literal string
}

func (t token) isField() bool { return t.letter != 0 }

// numeric reports whether the token renders as digits, which decides how
// many input digits the parser may take when fields are adjacent.
func (t token) numeric() bool {
	switch t.letter {
	case 'y', 'Y', 'u', 'w', 'W', 'd', 'D', 'F', 'h', 'H', 'K', 'k', 'm', 's', 'S':
		return true
	case 'M', 'L', 'Q', 'e', 'c':
		return t.count <= 2
	}
	return false
}

func isPatternLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// tokenize splits a UTS #35 pattern. Text inside single quotes is literal,
// '' is a quote, and a quote left open runs to the end of the pattern.
func tokenize(pattern string) []token {
	var (
		out []token
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, token{literal: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			i++
			for i < len(pattern) {
				if pattern[i] == '\'' {
					if i+1 < len(pattern) && pattern[i+1] == '\'' {
						lit.WriteByte('\'')
						i += 2
						continue
					}
					i++
					break
				}
				lit.WriteByte(pattern[i])
				i++
			}
		case isPatternLetter(c):
			flush()
			j := i
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			out = append(out, token{letter: c, count: j - i})
			i = j
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return out
}
