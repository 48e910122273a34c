package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-diagnostics/internal/diagnostics"
	"resume-diagnostics/internal/diagnostics/profile"
	"resume-diagnostics/internal/extract"
)

func resolveProfilePath() string {
	if strings.TrimSpace(profilePath) != "" {
		return profilePath
	}
	return os.Getenv("ANALYSIS_PROFILE")
}

func loadProfile() (profile.Profile, error) {
	p, err := profile.Load(resolveProfilePath())
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

func loadEngine() (*diagnostics.Engine, error) {
	p, err := loadProfile()
	if err != nil {
		return nil, err
	}
	return diagnostics.New(p)
}

// readDocument extracts text from a PDF, DOCX or plain text file.
func readDocument(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	text, err := extract.ExtractTextFromBytes(ctx, data, "", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	return text, nil
}

// writeJSON writes v as indented JSON to outPath, or to w when outPath is empty.
func writeJSON(w io.Writer, outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	return writeOutput(w, outPath, data)
}

func writeOutput(w io.Writer, outPath string, data []byte) error {
	if outPath == "" {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outPath, err)
	}
	return nil
}
