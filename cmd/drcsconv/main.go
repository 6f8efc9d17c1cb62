package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/wbrown/drcs2bmp"
	"github.com/wbrown/drcs2bmp/mapfile"
)

// loadEnv pulls optional defaults from dotenv files before flag
// parsing, so DRCS_INPUT, DRCS_OUTDIR and DRCS_MAP can live next to the
// dictionary instead of in every invocation. .env.local wins over .env;
// explicit flags win over both.
func loadEnv() {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			if godotenv.Load(name) == nil {
				return
			}
		}
	}
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	loadEnv()
	inputPath := flag.String("input", os.Getenv("DRCS_INPUT"),
		"Dictionary to convert: JSON file path, http(s) URL, or - for stdin (required)")
	outDir := flag.String("outdir", envOr("DRCS_OUTDIR", "drcs"),
		"Directory that receives the <hash>.bmp glyph bitmaps")
	mapPath := flag.String("map", os.Getenv("DRCS_MAP"),
		"Mapping file to merge into (default <outdir>/drcs_map.txt)")
	encodingName := flag.String("encoding", "utf-8",
		"Mapping file encoding: utf-8 or shift-jis")
	logPath := flag.String("log", "",
		"Write per-glyph conversion details to this file")
	logBase64 := flag.Bool("logbase64", false,
		"Also log the original base64 pattern of each new glyph")
	previewPath := flag.String("preview", "",
		"Write a PNG contact sheet of the newly added glyphs")
	fontPath := flag.String("font", "",
		"TTF font for preview captions (built-in 7x13 face if empty)")
	cellScale := flag.Int("cellscale", 2,
		"Glyph magnification on the preview sheet")
	workers := flag.Int("workers", 0,
		"Worker goroutines for conversion (0 = number of CPUs)")
	quiet := flag.Bool("quiet", false,
		"Suppress per-entry failure reports on stderr")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Please provide the dictionary using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}
	enc, err := mapfile.ParseEncoding(*encodingName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *mapPath == "" {
		*mapPath = filepath.Join(*outDir, "drcs_map.txt")
	}

	start := time.Now()
	entries, err := loadEntries(*inputPath)
	if err != nil {
		fmt.Printf("Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d dictionary entries from %s\n", len(entries), *inputPath)

	table, err := mapfile.Load(*mapPath, enc)
	if err != nil {
		fmt.Printf("Error loading mapping file: %v\n", err)
		os.Exit(1)
	}
	if table.Len() > 0 {
		fmt.Printf("Merging with %d existing mappings from %s\n", table.Len(), *mapPath)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var opts []drcs2bmp.ConverterOption
	if *workers > 0 {
		opts = append(opts, drcs2bmp.WithWorkers(*workers))
	}
	conv := drcs2bmp.NewConverter(opts...)
	results := conv.ConvertAll(entries)

	var logFile *os.File
	if *logPath != "" {
		logFile, err = os.Create(*logPath)
		if err != nil {
			fmt.Printf("Error creating log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
	}

	var tiles []drcs2bmp.SheetTile
	newCount, dupCount := 0, 0
	for i, r := range results {
		if r.Err != nil {
			if !*quiet {
				fmt.Fprintf(os.Stderr, "entry %d (%q): %v\n", i, r.Alternative, r.Err)
			}
			continue
		}
		if !table.Add(r.Hash, r.Alternative) {
			dupCount++
			continue
		}
		newCount++
		bmpPath := filepath.Join(*outDir, r.Hash+".bmp")
		if err := os.WriteFile(bmpPath, r.Bitmap, 0644); err != nil {
			fmt.Printf("Error writing %s: %v\n", bmpPath, err)
			os.Exit(1)
		}
		if logFile != nil {
			fmt.Fprintf(logFile, "%s=%s [%s]\n", r.Hash, r.Alternative, r.Detail)
			if *logBase64 {
				fmt.Fprintf(logFile, "%s=%s [BASE64: %s]\n", r.Hash, r.Alternative, entries[i].DRCS)
			}
		}
		if *previewPath != "" {
			tiles = append(tiles, drcs2bmp.SheetTile{Grid: r.Grid, Label: r.Alternative})
		}
	}

	if err := table.Save(*mapPath, enc); err != nil {
		fmt.Printf("Error writing mapping file: %v\n", err)
		os.Exit(1)
	}

	if *previewPath != "" && len(tiles) > 0 {
		sheetOpts := drcs2bmp.SheetOptions{
			CellScale: *cellScale,
			FontPath:  *fontPath,
		}
		if err := drcs2bmp.SaveSheetPNG(*previewPath, tiles, sheetOpts); err != nil {
			fmt.Printf("Error writing preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview sheet written to %s\n", *previewPath)
	}

	converted, ambiguous, failed := conv.Stats()
	fmt.Printf("Converted %d glyphs (%d ambiguous, %d failed) in %v\n",
		converted, ambiguous, failed, time.Since(start))
	fmt.Printf("New bitmaps: %d, duplicates skipped: %d\n", newCount, dupCount)
	fmt.Printf("Mapping file %s now has %d entries\n", *mapPath, table.Len())
}

// loadEntries reads the dictionary from a URL, stdin, or a local file.
func loadEntries(input string) ([]drcs2bmp.DictEntry, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return drcs2bmp.FetchDictionary(input)
	}
	return drcs2bmp.LoadDictionary(input)
}
