// Package gradle patches Gradle build scripts as plain text. Insertions are
// anchored on the first dependencies block and guarded by a substring or
// regexp check so they can be applied any number of times.
package gradle

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

type Language string

const (
	Groovy Language = "groovy"
	Kotlin Language = "kotlin"
)

// Script is a build script held as text.
type Script struct {
	Path     string
	Contents string
	Language Language
}

// LanguageForPath tells groovy scripts (build.gradle) from kotlin ones
// (build.gradle.kts).
func LanguageForPath(path string) Language {
	if strings.HasSuffix(path, ".kts") {
		return Kotlin
	}
	return Groovy
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gradle script: %w", err)
	}
	return &Script{Path: path, Contents: string(data), Language: LanguageForPath(path)}, nil
}

func (s *Script) Save() error {
	if err := os.WriteFile(s.Path, []byte(s.Contents), 0644); err != nil {
		return fmt.Errorf("write gradle script: %w", err)
	}
	return nil
}

// Dependency describes a line to add to a dependencies block.
type Dependency struct {
	Classpath string
	Version   string
	// Implementation replaces the quoted '<classpath>:<version>' literal in
	// app scripts, e.g. platform('com.google.firebase:firebase-bom:33.1.0').
	Implementation string
}

func (d Dependency) coordinate() string {
	if d.Version != "" {
		return d.Classpath + ":" + d.Version
	}
	return d.Classpath
}

var dependenciesBlock = regexp.MustCompile(`dependencies\s?{`)

func insertAfterDependencies(script, line string) string {
	loc := dependenciesBlock.FindStringIndex(script)
	if loc == nil {
		return script
	}
	return script[:loc[0]] + "dependencies {\n" + line + script[loc[1]:]
}

// AddProjectDependency adds classpath('<classpath>[:<version>]') to the first
// dependencies block unless the classpath already appears in the script.
func AddProjectDependency(script string, dep Dependency) string {
	if strings.Contains(script, dep.Classpath) {
		return script
	}
	return insertAfterDependencies(script, fmt.Sprintf("        classpath('%s')", dep.coordinate()))
}

// AddAppDependency adds an implementation line to the first dependencies
// block unless the classpath already appears in the script.
func AddAppDependency(script string, dep Dependency) string {
	if strings.Contains(script, dep.Classpath) {
		return script
	}
	implementation := dep.Implementation
	if implementation == "" {
		implementation = fmt.Sprintf("'%s'", dep.coordinate())
	}
	return insertAfterDependencies(script, "    implementation "+implementation)
}

// AddApplyPlugin appends an apply plugin line unless the plugin is already
// applied, either that way or through a plugins { id '...' } block.
func AddApplyPlugin(script, name string) string {
	quoted := regexp.QuoteMeta(name)
	applyPlugin := regexp.MustCompile(`apply\s+plugin:\s+['"]` + quoted + `['"]`)
	pluginID := regexp.MustCompile(`id\s+['"]` + quoted + `['"]`)
	if applyPlugin.MatchString(script) || pluginID.MatchString(script) {
		return script
	}
	return script + fmt.Sprintf("\napply plugin: '%s'", name)
}
