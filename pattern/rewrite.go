package pattern

import (
	"fmt"
	"strings"
)

// namedGroup locates a named capture group opener at s[i] == '('.
// It returns the group name and the index just past the opener.
// Lookbehind assertions (?<= and (?<! are not groups.
func namedGroup(s string, i int) (name string, bodyStart int, ok bool) {
	rest := s[i:]
	var open, closer string
	switch {
	case strings.HasPrefix(rest, "(?P<"):
		open, closer = "(?P<", ">"
	case strings.HasPrefix(rest, "(?<") && !strings.HasPrefix(rest, "(?<=") && !strings.HasPrefix(rest, "(?<!"):
		open, closer = "(?<", ">"
	case strings.HasPrefix(rest, "(?'"):
		open, closer = "(?'", "'"
	default:
		return "", 0, false
	}
	end := strings.Index(rest[len(open):], closer)
	if end <= 0 {
		return "", 0, false
	}
	name = rest[len(open) : len(open)+end]
	if !isWord(name) {
		return "", 0, false
	}
	return name, i + len(open) + end + len(closer), true
}

// skipClass returns the index just past the character class starting at
// s[i] == '['. A ']' right after the opening bracket (or its '^') is a
// literal.
func skipClass(s string, i int) (int, error) {
	j := i + 1
	if j < len(s) && s[j] == '^' {
		j++
	}
	if j < len(s) && s[j] == ']' {
		j++
	}
	for j < len(s) {
		switch s[j] {
		case '\\':
			j += 2
			continue
		case ']':
			return j + 1, nil
		}
		j++
	}
	return 0, fmt.Errorf("unterminated character class at offset %d", i)
}

// closeParen returns the index of the ')' matching the '(' at s[i].
func closeParen(s string, i int) (int, error) {
	depth := 0
	for j := i; j < len(s); {
		switch s[j] {
		case '\\':
			j += 2
			continue
		case '[':
			next, err := skipClass(s, j)
			if err != nil {
				return 0, err
			}
			j = next
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
		j++
	}
	return 0, fmt.Errorf("unbalanced parenthesis at offset %d", i)
}

// rewriter renames a format's named groups to "<format>_<group>" and fills
// bound groups with the alternation of their channels.
type rewriter struct {
	format string
	bodies map[string]string // group name -> replacement body, for bound groups
	seen   map[string]bool
}

func (rw *rewriter) rewrite(s string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			end := min(i+2, len(s))
			sb.WriteString(s[i:end])
			i = end
			continue
		case '[':
			end, err := skipClass(s, i)
			if err != nil {
				return "", err
			}
			sb.WriteString(s[i:end])
			i = end
			continue
		case '(':
			name, bodyStart, ok := namedGroup(s, i)
			if !ok {
				break
			}
			end, err := closeParen(s, i)
			if err != nil {
				return "", err
			}
			rw.seen[name] = true
			body, bound := rw.bodies[name]
			if !bound {
				body, err = rw.rewrite(s[bodyStart:end])
				if err != nil {
					return "", err
				}
			}
			fmt.Fprintf(&sb, "(?<%s_%s>%s)", rw.format, name, body)
			i = end + 1
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String(), nil
}

// alternation joins channel fragments so each is matched as a unit.
func alternation(fragments []string) string {
	parts := make([]string, len(fragments))
	for i, f := range fragments {
		parts[i] = "(?:" + f + ")"
	}
	return strings.Join(parts, "|")
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
