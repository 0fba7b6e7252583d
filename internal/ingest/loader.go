package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"refinery/internal/logging"
)

// DefaultFormats lists the file formats the loader understands.
var DefaultFormats = []string{"json", "jsonl", "csv", "txt"}

// maxDirLoaders bounds concurrent file reads in LoadDir.
const maxDirLoaders = 4

// LoadFile reads one input file, dispatching on its extension.
// supported restricts the accepted formats; nil means DefaultFormats.
func LoadFile(path string, supported []string) ([]Record, error) {
	if supported == nil {
		supported = DefaultFormats
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !slices.Contains(supported, format) {
		return nil, fmt.Errorf("ingest: unsupported format %q for %q", format, path)
	}

	switch format {
	case "json":
		return loadJSON(path)
	case "jsonl":
		return loadJSONL(path)
	case "csv":
		return loadCSV(path)
	case "txt":
		return loadTXT(path)
	default:
		return nil, fmt.Errorf("ingest: no reader for format %q", format)
	}
}

// LoadDir loads every matching file under dir concurrently, preserving the
// lexical file order in the combined result. Files that fail to load are
// logged and skipped; an empty directory yields an empty slice, not an error.
func LoadDir(ctx context.Context, dir, pattern string, supported []string) ([]Record, error) {
	if pattern == "" {
		pattern = "*"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("ingest: glob %q: %w", pattern, err)
	}

	logger := logging.New("ingest")

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}

	perFile := make([][]Record, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxDirLoaders)

	for i, path := range files {
		g.Go(func() error {
			recs, err := LoadFile(path, supported)
			if err != nil {
				logger.Warn("skipping file", "path", path, "error", err)
				return nil
			}
			logger.Info("loaded file", "path", path, "records", len(recs))
			perFile[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Record
	for _, recs := range perFile {
		all = append(all, recs...)
	}
	logger.Info("directory load complete", "dir", dir, "files", len(files), "records", len(all))
	return all, nil
}

// Load resolves path as either a single file or a directory of files.
func Load(ctx context.Context, path string, supported []string) ([]Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: stat %q: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(ctx, path, "*", supported)
	}
	return LoadFile(path, supported)
}

func loadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: read %q: %w", path, err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("ingest: parse json %q: %w", path, err)
	}

	switch v := parsed.(type) {
	case []any:
		records := make([]Record, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ingest: %q element %d is not an object", path, i)
			}
			records = append(records, Record(m))
		}
		return records, nil
	case map[string]any:
		return []Record{Record(v)}, nil
	default:
		return nil, fmt.Errorf("ingest: %q is neither a JSON array nor an object", path)
	}
}

func loadJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("ingest: %q line %d: %w", path, lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: scan %q: %w", path, err)
	}
	return records, nil
}

func loadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: parse csv %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// loadTXT treats each non-empty line as one record with a "text" field and
// its 1-based line number.
func loadTXT(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %q: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		records = append(records, Record{
			"text":        line,
			"line_number": lineNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: scan %q: %w", path, err)
	}
	return records, nil
}
