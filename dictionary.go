package drcs2bmp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// DictEntry is one substitution-dictionary record: the base64-encoded
// DRCS pattern data and the character string a renderer should show in
// its place.
type DictEntry struct {
	DRCS        string `json:"drcs"`
	Alternative string `json:"alternative"`
}

// dictFile mirrors the published dictionary layout, a top-level object
// holding the entries under "map".
type dictFile struct {
	Map []DictEntry `json:"map"`
}

var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// ParseDictionary reads a JSON substitution dictionary, transparently
// unwrapping gzip or zstd compression detected from the leading magic
// bytes. Entries missing either field are dropped rather than failing
// the whole file; hand-maintained dictionaries tend to carry a few
// half-filled records.
func ParseDictionary(r io.Reader) ([]DictEntry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	raw, err = decompress(raw)
	if err != nil {
		return nil, err
	}
	var df dictFile
	if err := json.Unmarshal(raw, &df); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary JSON: %w", err)
	}
	entries := make([]DictEntry, 0, len(df.Map))
	for _, e := range df.Map {
		if e.DRCS == "" || e.Alternative == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// decompress returns the plain bytes behind raw, unwrapping one layer
// of gzip or zstd when the corresponding magic leads the data.
func decompress(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip dictionary: %w", err)
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip dictionary: %w", err)
		}
		return plain, nil
	case bytes.HasPrefix(raw, zstdMagic):
		zr, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd dictionary: %w", err)
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress zstd dictionary: %w", err)
		}
		return plain, nil
	}
	return raw, nil
}

// LoadDictionary reads a dictionary from a file path, or from stdin
// when path is "-".
func LoadDictionary(path string) ([]DictEntry, error) {
	if path == "-" {
		return ParseDictionary(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()
	return ParseDictionary(f)
}

// FetchDictionary downloads a dictionary over HTTP(S). Anything other
// than a 200 response is an error; redirects are followed by the
// default client.
func FetchDictionary(url string) ([]DictEntry, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dictionary: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch dictionary: %s returned %s", url, resp.Status)
	}
	return ParseDictionary(resp.Body)
}
