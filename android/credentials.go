package android

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrGoogleServicesNotFound is returned when the configured
// google-services.json does not exist. It aborts the pass.
var ErrGoogleServicesNotFound = errors.New("google-services.json not found")

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// CopyGoogleServices copies src, relative to projectRoot, to
// app/google-services.json under androidRoot and returns the destination.
// With dryRun the source is still checked but nothing is written.
func CopyGoogleServices(projectRoot, src, androidRoot string, dryRun bool) (string, error) {
	srcPath := resolve(projectRoot, src)
	destPath := filepath.Join(androidRoot, filepath.FromSlash(GoogleServicesDestination))

	data, err := os.ReadFile(srcPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("cannot copy google-services.json, because the file %s doesn't exist, please provide a valid path in app.json: %w", srcPath, ErrGoogleServicesNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("cannot copy google-services.json from %s: %w", srcPath, err)
	}
	if dryRun {
		return destPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("cannot copy google-services.json: %w", err)
	}
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return "", fmt.Errorf("cannot copy google-services.json to %s: %w", destPath, err)
	}
	return destPath, nil
}
