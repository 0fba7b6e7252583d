// Package output persists a finished run: the train/val splits as JSON
// Lines files and the quality report rendered for humans or machines.
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"refinery/internal/pipeline"
	"refinery/internal/transform"
)

const (
	// TrainFile and ValFile are the fixed names of the split artifacts
	// inside the output directory.
	TrainFile = "train.jsonl"
	ValFile   = "val.jsonl"
	// ReportFile holds the machine-readable run summary.
	ReportFile = "report.json"
)

// WriteJSONL writes one example per line to path, creating parent
// directories as needed.
func WriteJSONL(path string, examples []transform.Example) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: create dir for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, ex := range examples {
		if err := enc.Encode(ex); err != nil {
			return fmt.Errorf("output: encode record %d of %q: %w", i, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("output: flush %q: %w", path, err)
	}
	return f.Close()
}

// WriteSplit writes train.jsonl and val.jsonl for the run into dir and
// returns the paths written.
func WriteSplit(dir string, result *pipeline.Result) (trainPath, valPath string, err error) {
	trainPath = filepath.Join(dir, TrainFile)
	valPath = filepath.Join(dir, ValFile)
	if err := WriteJSONL(trainPath, result.Train); err != nil {
		return "", "", err
	}
	if err := WriteJSONL(valPath, result.Val); err != nil {
		return "", "", err
	}
	return trainPath, valPath, nil
}

// WriteReport persists the run summary (stats plus the quality report) as
// indented JSON at dir/report.json.
func WriteReport(dir string, result *pipeline.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output: create dir %q: %w", dir, err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("output: marshal report: %w", err)
	}
	path := filepath.Join(dir, ReportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("output: write %q: %w", path, err)
	}
	return path, nil
}
