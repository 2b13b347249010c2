package importer

import "strings"

// ParseRecord splits one line of a word list into trimmed fields.
//
// Commas and semicolons both delimit fields unless they appear inside a
// double-quoted span. Inside quotes a doubled quote ("") is a literal quote.
// ParseRecord never fails: malformed input still yields some fields, and the
// caller decides whether they make a valid row. A blank line yields no fields.
func ParseRecord(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	// Delimiters and quotes are ASCII, so the line is walked byte by byte and
	// non-UTF-8 text (a Latin-1 file, say) passes through untouched.
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case (c == ',' || c == ';') && !inQuotes:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	if len(fields) > 0 || cur.Len() > 0 {
		fields = append(fields, cleanField(cur.String()))
	}
	return fields
}

// cleanField strips one leading and one trailing literal quote, then
// whitespace. A quote behind padding is content and stays.
func cleanField(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}
