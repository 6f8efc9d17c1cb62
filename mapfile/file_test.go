package mapfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseMappingLines(t *testing.T) {
	input := strings.Join([]string{
		hashA + "=〓",
		"",
		"# not a mapping line",
		"DEADBEEF=too short",
		strings.ToLower(hashB) + "=♪",
		hashC + "=first",
		hashC + "=second",
		hashA[:31] + "Z=corrupt hash",
		hashB + "=dropped duplicate",
	}, "\n")

	tbl, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to parse mapping: %v", err)
	}

	want := []Entry{
		{Hash: hashA, Char: "〓"},
		{Hash: hashB, Char: "♪"},
		{Hash: hashC, Char: "first"},
	}
	got := tbl.Entries()
	if len(got) != len(want) {
		t.Fatalf("Should parse %d mappings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Mapping %d should be %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestParseCRLF(t *testing.T) {
	tbl, err := Parse(strings.NewReader(hashA + "=〓\r\n" + hashB + "=♪\r\n"))
	if err != nil {
		t.Fatalf("Failed to parse mapping: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("CRLF input should parse 2 mappings, got %d", tbl.Len())
	}
	if char, _ := tbl.Get(hashA); char != "〓" {
		t.Errorf("Carriage return should be stripped from the value, got %q", char)
	}
}

func TestWriteFormat(t *testing.T) {
	tbl := NewTable()
	tbl.Add(hashB, "♪")
	tbl.Add(hashA, "〓")

	var buf bytes.Buffer
	if err := tbl.Write(&buf, UTF8); err != nil {
		t.Fatalf("Failed to write mapping: %v", err)
	}

	want := hashB + "=♪\n" + hashA + "=〓\n"
	if buf.String() != want {
		t.Errorf("Serialized mapping should be %q, got %q", want, buf.String())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := NewTable()
	tbl.Add(hashA, "〓")
	tbl.Add(hashB, "アイウ")
	tbl.Add(hashC, "A")

	path := filepath.Join(t.TempDir(), "drcs_map.txt")
	if err := tbl.Save(path, UTF8); err != nil {
		t.Fatalf("Failed to save mapping: %v", err)
	}

	loaded, err := Load(path, UTF8)
	if err != nil {
		t.Fatalf("Failed to load mapping: %v", err)
	}
	if loaded.Len() != tbl.Len() {
		t.Fatalf("Round trip should keep %d mappings, got %d", tbl.Len(), loaded.Len())
	}
	for i, e := range tbl.Entries() {
		if got := loaded.Entries()[i]; got != e {
			t.Errorf("Mapping %d should round-trip as %+v, got %+v", i, e, got)
		}
	}
}

func TestShiftJISRoundTrip(t *testing.T) {
	tbl := NewTable()
	tbl.Add(hashA, "音符")
	tbl.Add(hashB, "あ")

	path := filepath.Join(t.TempDir(), "drcs_map.txt")
	if err := tbl.Save(path, ShiftJIS); err != nil {
		t.Fatalf("Failed to save Shift_JIS mapping: %v", err)
	}

	// On disk the values must be Shift_JIS bytes, not UTF-8
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read mapping back: %v", err)
	}
	if bytes.Contains(raw, []byte("音符")) {
		t.Error("File should not contain UTF-8 bytes when saved as Shift_JIS")
	}

	loaded, err := Load(path, ShiftJIS)
	if err != nil {
		t.Fatalf("Failed to load Shift_JIS mapping: %v", err)
	}
	if char, _ := loaded.Get(hashA); char != "音符" {
		t.Errorf("Shift_JIS round trip should restore 音符, got %q", char)
	}
	if char, _ := loaded.Get(hashB); char != "あ" {
		t.Errorf("Shift_JIS round trip should restore あ, got %q", char)
	}
}

func TestLoadMissingFile(t *testing.T) {
	tbl, err := Load(filepath.Join(t.TempDir(), "absent.txt"), UTF8)
	if err != nil {
		t.Fatalf("Missing mapping file should not be an error: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Missing mapping file should yield an empty table, got %d entries", tbl.Len())
	}
}

func TestParseEncoding(t *testing.T) {
	cases := []struct {
		name string
		want Encoding
		ok   bool
	}{
		{"utf-8", UTF8, true},
		{"UTF8", UTF8, true},
		{"", UTF8, true},
		{"shift-jis", ShiftJIS, true},
		{"Shift_JIS", ShiftJIS, true},
		{"sjis", ShiftJIS, true},
		{"latin-1", UTF8, false},
	}
	for _, c := range cases {
		got, err := ParseEncoding(c.name)
		if c.ok && err != nil {
			t.Errorf("ParseEncoding(%q) should succeed, got %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseEncoding(%q) should fail", c.name)
		}
		if c.ok && got != c.want {
			t.Errorf("ParseEncoding(%q) should be %v, got %v", c.name, c.want, got)
		}
	}
}
