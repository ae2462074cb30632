package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, run("../pbxproj/testdata/project.pbxproj", out))

	assert.FileExists(t, filepath.Join(out, "OriginalProject.json"))
	assert.FileExists(t, filepath.Join(out, "ModifiedProject.json"))
	data, err := os.ReadFile(filepath.Join(out, "newproject.pbxproj"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "isa = PBXNativeTarget;"))
}

func TestRunReportsWriteErrors(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(out, "newproject.pbxproj"), 0755))
	assert.Error(t, run("../pbxproj/testdata/project.pbxproj", out))
	assert.FileExists(t, filepath.Join(out, "ModifiedProject.json"))

	assert.Error(t, run("../pbxproj/testdata/project.pbxproj", filepath.Join(t.TempDir(), "missing")))

	assert.Error(t, run("missing.pbxproj", t.TempDir()))
}
