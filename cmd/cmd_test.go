package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(&stdout, &stderr)
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func copyFile(t *testing.T, src, dest string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	writeFile(t, dest, string(data))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pushkit 0.0.0-dev\n", stdout)

	_, _, err = execute(t, "version", "extra")
	assert.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	stdout, _, err := execute(t, "dump", "../pbxproj/testdata/project.pbxproj")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "{\n"))
	assert.Contains(t, stdout, `"PBXNativeTarget"`)

	path := filepath.Join(t.TempDir(), "project.json")
	_, _, err = execute(t, "dump", "../pbxproj/testdata/project.pbxproj", "-o", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, _, err = execute(t, "dump", "missing.pbxproj")
	assert.Error(t, err)
}

func androidTree(t *testing.T, googleServices string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pushkit.yaml"), "name: HelloWorld\nandroid:\n  package: com.example.helloworld\n  googleServicesFile: "+googleServices+"\nplugin:\n  apiKey: abc\n")
	copyFile(t, "../manifest/testdata/AndroidManifest.xml", filepath.Join(root, "android", "app", "src", "main", "AndroidManifest.xml"))
	copyFile(t, "../gradle/testdata/build.gradle", filepath.Join(root, "android", "build.gradle"))
	writeFile(t, filepath.Join(root, "android", "app", "build.gradle.kts"), "plugins {\n}\n")
	writeFile(t, filepath.Join(root, "google-services.json"), "{}")
	return root
}

func TestApplyCommand(t *testing.T) {
	root := androidTree(t, "google-services.json")

	stdout, stderr, err := execute(t, "apply", "--project-root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Done:")
	assert.Contains(t, stdout, "HelloWorld")
	assert.Contains(t, stderr, "Warning: [android] @iterable/expo-plugin: Cannot automatically configure app build.gradle if it's not groovy")

	data, err := os.ReadFile(filepath.Join(root, "android", "app", "src", "main", "AndroidManifest.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "android.permission.POST_NOTIFICATIONS")
	assert.FileExists(t, filepath.Join(root, "android", "app", "google-services.json"))
}

func TestApplyCommandMissingCredentials(t *testing.T) {
	root := androidTree(t, "nope.json")
	manifestPath := filepath.Join(root, "android", "app", "src", "main", "AndroidManifest.xml")
	before, err := os.ReadFile(manifestPath)
	require.NoError(t, err)

	_, _, err = execute(t, "apply", "--project-root", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot copy")
	assert.Contains(t, err.Error(), filepath.Join(root, "nope.json"))

	after, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestApplyCommandDryRun(t *testing.T) {
	root := androidTree(t, "google-services.json")

	stdout, _, err := execute(t, "apply", "--project-root", root, "--dry-run", "--platform", "android")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dry run")
	assert.NoFileExists(t, filepath.Join(root, "android", "app", "google-services.json"))
}

func TestApplyCommandFlags(t *testing.T) {
	_, _, err := execute(t, "apply", "--project-root", t.TempDir(), "--platform", "windows")
	assert.EqualError(t, err, `invalid platform "windows", expected ios, android or all`)

	_, _, err = execute(t, "apply", "--project-root", t.TempDir())
	assert.ErrorContains(t, err, "no app config found")
}
