package gradle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var googleServices = Dependency{Classpath: "com.google.gms:google-services", Version: "4.3.10"}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestAddProjectDependency(t *testing.T) {
	script := readFixture(t, "build.gradle")

	out := AddProjectDependency(script, googleServices)
	assert.Contains(t, out, "dependencies {\n        classpath('com.google.gms:google-services:4.3.10')\n        classpath('com.android.tools.build:gradle')")
	assert.Equal(t, len(script)+len("\n        classpath('com.google.gms:google-services:4.3.10')"), len(out))

	again := AddProjectDependency(out, googleServices)
	assert.Equal(t, out, again)
	assert.Equal(t, 1, strings.Count(again, "com.google.gms:google-services"))
}

func TestAddProjectDependencyWithoutVersion(t *testing.T) {
	out := AddProjectDependency("dependencies{\n}", Dependency{Classpath: "a.b:c"})
	assert.Equal(t, "dependencies {\n        classpath('a.b:c')\n}", out)
}

func TestDependencyAlreadyPresentInAnyForm(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "with version", script: "dependencies {\n    classpath('com.google.gms:google-services:4.4.0')\n}"},
		{name: "without version", script: "dependencies {\n    classpath 'com.google.gms:google-services'\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.script, AddProjectDependency(tt.script, googleServices))
			assert.Equal(t, tt.script, AddAppDependency(tt.script, googleServices))
		})
	}
}

func TestNoDependenciesBlockIsUnchanged(t *testing.T) {
	script := "android {\n}\n"
	assert.Equal(t, script, AddProjectDependency(script, googleServices))
	assert.Equal(t, script, AddAppDependency(script, googleServices))
}

func TestAddAppDependency(t *testing.T) {
	script := readFixture(t, "app.build.gradle")

	out := AddAppDependency(script, Dependency{Classpath: "com.google.firebase:firebase-messaging"})
	bom := Dependency{
		Classpath:      "com.google.firebase:firebase-bom",
		Version:        "33.1.0",
		Implementation: "platform('com.google.firebase:firebase-bom:33.1.0')",
	}
	out = AddAppDependency(out, bom)

	assert.Contains(t, out, "dependencies {\n"+
		"    implementation platform('com.google.firebase:firebase-bom:33.1.0')\n"+
		"    implementation 'com.google.firebase:firebase-messaging'\n"+
		"    // The version of react-native")
	assert.Equal(t, out, AddAppDependency(out, bom))
}

func TestAddApplyPlugin(t *testing.T) {
	const plugin = "com.google.gms.google-services"
	tests := []struct {
		name    string
		script  string
		changed bool
	}{
		{name: "absent", script: "android {}", changed: true},
		{name: "apply single quotes", script: "apply plugin: 'com.google.gms.google-services'", changed: false},
		{name: "apply double quotes", script: "apply  plugin:  \"com.google.gms.google-services\"", changed: false},
		{name: "plugins block", script: "plugins {\n    id 'com.google.gms.google-services'\n}", changed: false},
		{name: "plugins block kotlin style", script: "plugins {\n    id \"com.google.gms.google-services\" version \"4.4.0\"\n}", changed: false},
		{name: "dot is literal", script: "apply plugin: 'comXgoogleXgmsXgoogle-services'", changed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AddApplyPlugin(tt.script, plugin)
			if tt.changed {
				assert.Equal(t, tt.script+"\napply plugin: 'com.google.gms.google-services'", out)
				assert.Equal(t, out, AddApplyPlugin(out, plugin))
			} else {
				assert.Equal(t, tt.script, out)
			}
		})
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.gradle.kts")
	require.NoError(t, os.WriteFile(path, []byte("plugins {}"), 0644))

	script, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Kotlin, script.Language)

	script.Contents += "\n"
	require.NoError(t, script.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "plugins {}\n", string(data))

	_, err = Load(filepath.Join(dir, "missing.gradle"))
	assert.Error(t, err)
	assert.Equal(t, Groovy, LanguageForPath("app/build.gradle"))
}
