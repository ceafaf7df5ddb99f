// Package report renders benchmark artifacts: filesystem-safe path
// segments, report files and side-by-side buffer dumps.
package report

// ToDirectoryName makes s safe to use as a path segment. Every character
// that is not alphanumeric or '.' becomes '_', runs of underscores collapse
// to one, leading and trailing underscores are trimmed, and letters are
// lowercased when lowercase is set.
func ToDirectoryName(s string, lowercase bool) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '.':
		case c >= 'A' && c <= 'Z':
			if lowercase {
				c = c - 'A' + 'a'
			}
		default:
			c = '_'
		}
		if c == '_' && (len(out) == 0 || out[len(out)-1] == '_') {
			continue
		}
		out = append(out, c)
	}
	if len(out) > 0 && out[len(out)-1] == '_' {
		out = out[:len(out)-1]
	}
	return string(out)
}
