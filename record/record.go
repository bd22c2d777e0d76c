// Package record parses and formats the comma-delimited lines of the cast
// file. A line holds one actor followed by the titles of their movies.
package record

import "strings"

// Delimiter separates fields on a raw line.
const Delimiter = ","

// Separator joins fields when a line is written back out.
const Separator = Delimiter + " "

// Record is one actor and the movies listed for them on a single line.
type Record struct {
	Actor  string
	Movies []string
}

// ParseLine splits raw on the delimiter and trims surrounding whitespace from
// every field. Field order and empty fields are preserved.
func ParseLine(raw string) []string {
	fields := strings.Split(raw, Delimiter)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// FormatLine joins fields with Separator. It does not add a line terminator.
func FormatLine(fields []string) string {
	return strings.Join(fields, Separator)
}

// FromFields builds a Record from parsed fields. The first field names the
// actor; empty movie fields are dropped. ok is false when there is no actor.
func FromFields(fields []string) (r Record, ok bool) {
	if len(fields) == 0 || fields[0] == "" {
		return Record{}, false
	}
	r.Actor = fields[0]
	for _, m := range fields[1:] {
		if m != "" {
			r.Movies = append(r.Movies, m)
		}
	}
	return r, true
}
