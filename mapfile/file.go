package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding selects the text encoding of a mapping file on disk.
// Renderers on Japanese broadcast equipment often want Shift_JIS,
// everything else wants UTF-8.
type Encoding int

const (
	UTF8 Encoding = iota
	ShiftJIS
)

// ParseEncoding maps a command-line encoding name to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "shift-jis", "shift_jis", "sjis":
		return ShiftJIS, nil
	}
	return UTF8, fmt.Errorf("unknown encoding %q (want utf-8 or shift-jis)", name)
}

// lineRe matches one mapping line: 32 hex digits, '=', then the
// substitute string. Anything else on a line is ignored.
var lineRe = regexp.MustCompile(`^([0-9A-Fa-f]{32})=(.+)$`)

// Parse reads mapping lines into a fresh table. Lines that do not match
// the hash=char shape are skipped, so comments, blank lines and
// half-edited entries survive a round trip without aborting the load.
// Later duplicates of a hash are dropped in favor of the first.
func Parse(r io.Reader) (*Table, error) {
	t := NewTable()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		t.Add(m[1], m[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mapping: %w", err)
	}
	return t, nil
}

// Load reads an existing mapping file in the given encoding. A missing
// file yields an empty table, so first runs need no special casing.
func Load(path string, enc Encoding) (*Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping file: %w", err)
	}
	defer f.Close()
	return Parse(decodeReader(f, enc))
}

// Write serializes the table in insertion order, one hash=char line per
// mapping, transcoding to the given encoding.
func (t *Table) Write(w io.Writer, enc Encoding) error {
	out := w
	var tw *transform.Writer
	if enc == ShiftJIS {
		tw = transform.NewWriter(w, japanese.ShiftJIS.NewEncoder())
		out = tw
	}
	bw := bufio.NewWriter(out)
	var werr error
	t.Iterate(func(hash, char string) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bw, "%s=%s\n", hash, char)
	})
	if werr != nil {
		return fmt.Errorf("failed to write mapping: %w", werr)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write mapping: %w", err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("failed to encode mapping: %w", err)
		}
	}
	return nil
}

// Save writes the table to path, replacing any existing file.
func (t *Table) Save(path string, enc Encoding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mapping file: %w", err)
	}
	if err := t.Write(f, enc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write mapping file: %w", err)
	}
	return nil
}

// decodeReader wraps r so its contents come out as UTF-8.
func decodeReader(r io.Reader, enc Encoding) io.Reader {
	if enc == ShiftJIS {
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	}
	return r
}
