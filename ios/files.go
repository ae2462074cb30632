package ios

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"howett.net/plist"
)

func extensionFileContents() (map[string][]byte, error) {
	entitlements, err := plist.MarshalIndent(extensionEntitlements, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("encode extension entitlements: %w", err)
	}
	return map[string][]byte{
		MainFileName:         []byte(mainFileContent),
		PlistFileName:        []byte(plistContent),
		EntitlementsFileName: entitlements,
	}, nil
}

// WriteExtensionFiles creates <iosRoot>/<ExtensionName>/ and writes the
// extension's source, Info.plist and entitlements. Existing files are left
// alone. It returns the paths it wrote.
func WriteExtensionFiles(iosRoot string) ([]string, error) {
	dir := filepath.Join(iosRoot, ExtensionName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	contents, err := extensionFileContents()
	if err != nil {
		return nil, err
	}

	var written []string
	for _, name := range ExtensionFiles {
		path := filepath.Join(dir, name)
		created, err := createFileIfNotExists(path, contents[name])
		if err != nil {
			return written, err
		}
		if created {
			written = append(written, path)
		}
	}
	return written, nil
}

func createFileIfNotExists(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
