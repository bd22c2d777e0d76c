package persist

import (
	"bufio"
	"bytes"
	"io"

	"github.com/mlwelles/castIndex/index"
	"github.com/mlwelles/castIndex/record"
)

// maxLineBytes bounds a single line on read.
const maxLineBytes = 16 << 20

// Serialize writes ix to w in the cast file format.
func Serialize(w io.Writer, ix *index.Index) error {
	bw := bufio.NewWriter(w)
	for actor, films := range ix.Actors() {
		fields := append([]string{actor}, films.Names()...)
		if _, err := bw.WriteString(record.FormatLine(fields)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Marshal returns ix in the cast file format.
func Marshal(ix *index.Index) []byte {
	var buf bytes.Buffer
	_ = Serialize(&buf, ix) // writes to a bytes.Buffer cannot fail
	return buf.Bytes()
}

// Deserialize reads records from r. Blank lines and lines without an actor
// are skipped. Lines repeating an actor are merged into the first record for
// that actor.
func Deserialize(r io.Reader) ([]record.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []record.Record
	pos := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	for sc.Scan() {
		rec, ok := record.FromFields(record.ParseLine(sc.Text()))
		if !ok {
			continue
		}
		i, dup := pos[rec.Actor]
		if !dup {
			i = len(out)
			pos[rec.Actor] = i
			seen[rec.Actor] = make(map[string]struct{})
			out = append(out, record.Record{Actor: rec.Actor})
		}
		for _, m := range rec.Movies {
			if _, ok := seen[rec.Actor][m]; ok {
				continue
			}
			seen[rec.Actor][m] = struct{}{}
			out[i].Movies = append(out[i].Movies, m)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
