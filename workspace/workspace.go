// Package workspace loads the native project files of an app into a
// pipeline.Config and writes the mutated ones back.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/soapywu/pushkit/config"
	"github.com/soapywu/pushkit/gradle"
	"github.com/soapywu/pushkit/logger"
	"github.com/soapywu/pushkit/manifest"
	"github.com/soapywu/pushkit/pbxproj"
	"github.com/soapywu/pushkit/pipeline"
	"howett.net/plist"
)

type Workspace struct {
	Root   string
	Config *pipeline.Config

	infoPlistPath      string
	infoPlistFormat    int
	entitlementsPath   string
	entitlementsFormat int
	podfilePath        string
	manifestPath       string
	podfileOriginal    string
}

type Option func(w *Workspace)

func WithLogger(log logger.Logger) Option {
	return func(w *Workspace) {
		w.Config.Logger = log
	}
}

func WithDryRun(dryRun bool) Option {
	return func(w *Workspace) {
		w.Config.DryRun = dryRun
	}
}

// Load reads <root>/ios and <root>/android. A missing platform directory
// leaves that platform unloaded.
func Load(root string, app *config.Config, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		Root:   root,
		Config: pipeline.NewConfig(root),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.Config.Name = app.Name
	w.Config.IOS.BundleIdentifier = app.IOS.BundleIdentifier
	w.Config.Android.Package = app.Android.Package
	w.Config.Android.GoogleServicesFile = app.Android.GoogleServicesFile

	if err := w.loadIOS(filepath.Join(root, "ios")); err != nil {
		return nil, err
	}
	if err := w.loadAndroid(filepath.Join(root, "android")); err != nil {
		return nil, err
	}
	return w, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// findXcodeProject prefers <name>.xcodeproj and falls back to the only
// .xcodeproj in dir.
func findXcodeProject(dir, name string) (string, error) {
	if name != "" {
		path := filepath.Join(dir, name+".xcodeproj")
		if isDir(path) {
			return path, nil
		}
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.xcodeproj"))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no .xcodeproj found in %s", dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("several .xcodeproj found in %s, set name in the app config", dir)
	}
}

func readPlist(path string) (map[string]interface{}, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	values := map[string]interface{}{}
	format, err := plist.Unmarshal(data, &values)
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, format, nil
}

func writePlist(path string, values map[string]interface{}, format int) error {
	data, err := plist.MarshalIndent(values, format, "\t")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

func (w *Workspace) loadIOS(dir string) error {
	if !isDir(dir) {
		w.Config.Log().Debug("No ios directory in {Root}", w.Root)
		return nil
	}
	ios := &w.Config.IOS
	ios.Root = dir

	projectDir, err := findXcodeProject(dir, w.Config.Name)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(projectDir), ".xcodeproj")
	if w.Config.Name == "" {
		w.Config.Name = name
	}

	ios.Xcode = pbxproj.NewPbxProject(filepath.Join(projectDir, "project.pbxproj"))
	if err := ios.Xcode.Parse(); err != nil {
		return fmt.Errorf("load xcode project: %w", err)
	}
	w.Config.Log().Debug("Loaded {Path}", ios.Xcode.FilePath())

	w.infoPlistPath = filepath.Join(dir, name, "Info.plist")
	ios.InfoPlist, w.infoPlistFormat, err = readPlist(w.infoPlistPath)
	if errors.Is(err, fs.ErrNotExist) {
		w.Config.Log().Warn("No Info.plist at {Path}", w.infoPlistPath)
		ios.InfoPlist = nil
	} else if err != nil {
		return err
	}

	ios.AppTarget = appTarget(ios.Xcode, name)
	ios.EntitlementsFile = entitlementsFile(ios.Xcode, ios.AppTarget, name)
	w.entitlementsPath = filepath.FromSlash(ios.EntitlementsFile)
	if !filepath.IsAbs(w.entitlementsPath) {
		w.entitlementsPath = filepath.Join(dir, w.entitlementsPath)
	}
	ios.Entitlements, w.entitlementsFormat, err = readPlist(w.entitlementsPath)
	if errors.Is(err, fs.ErrNotExist) {
		ios.Entitlements = map[string]interface{}{}
		w.entitlementsFormat = plist.XMLFormat
	} else if err != nil {
		return err
	}

	w.podfilePath = filepath.Join(dir, "Podfile")
	if data, err := os.ReadFile(w.podfilePath); err == nil {
		contents := string(data)
		ios.Podfile = &contents
		w.podfileOriginal = contents
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read Podfile: %w", err)
	}
	return nil
}

const applicationProductType = "com.apple.product-type.application"

// appTarget is the application target named name, or the first
// application target when none has that name.
func appTarget(project *pbxproj.PbxProject, name string) string {
	first := ""
	for _, target := range project.Targets() {
		if target.ProductType != applicationProductType {
			continue
		}
		if target.Name == name {
			return target.Name
		}
		if first == "" {
			first = target.Name
		}
	}
	return first
}

// entitlementsFile reads CODE_SIGN_ENTITLEMENTS of target, relative to the
// ios directory. Without one it is <name>/<name>.entitlements.
func entitlementsFile(project *pbxproj.PbxProject, target, name string) string {
	fallback := name + "/" + name + ".entitlements"
	if target == "" {
		return fallback
	}
	values := project.GetBuildProperty("CODE_SIGN_ENTITLEMENTS", "", target)
	if len(values) == 0 {
		return fallback
	}
	path := strings.Trim(values[0], `"`)
	for _, variable := range []string{"$(TARGET_NAME)", "${TARGET_NAME}"} {
		path = strings.ReplaceAll(path, variable, target)
	}
	for _, prefix := range []string{"$(SRCROOT)/", "${SRCROOT}/", "$(PROJECT_DIR)/", "${PROJECT_DIR}/"} {
		path = strings.TrimPrefix(path, prefix)
	}
	if path == "" {
		return fallback
	}
	return path
}

// gradleScript loads dir/build.gradle, or build.gradle.kts when only that
// exists.
func gradleScript(dir string) (*gradle.Script, error) {
	for _, name := range []string{"build.gradle", "build.gradle.kts"} {
		path := filepath.Join(dir, name)
		if exists(path) {
			return gradle.Load(path)
		}
	}
	return nil, nil
}

func (w *Workspace) loadAndroid(dir string) error {
	if !isDir(dir) {
		w.Config.Log().Debug("No android directory in {Root}", w.Root)
		return nil
	}
	android := &w.Config.Android
	android.Root = dir

	w.manifestPath = filepath.Join(dir, "app", "src", "main", "AndroidManifest.xml")
	if exists(w.manifestPath) {
		doc, err := manifest.Load(w.manifestPath)
		if err != nil {
			return err
		}
		android.Manifest = doc
	} else {
		w.Config.Log().Warn("No AndroidManifest.xml at {Path}", w.manifestPath)
	}

	var err error
	if android.ProjectBuildGradle, err = gradleScript(dir); err != nil {
		return err
	}
	if android.AppBuildGradle, err = gradleScript(filepath.Join(dir, "app")); err != nil {
		return err
	}
	return nil
}

// Apply runs steps over the loaded artifacts. Save writes the configuration
// the last step returned, even when a step failed.
func (w *Workspace) Apply(steps []pipeline.Step) error {
	result, err := pipeline.Run(w.Config, steps)
	if result != nil {
		w.Config = result
	}
	return err
}

// Save writes every loaded artifact back to where it was read from. The
// entitlements file is created when it did not exist.
func (w *Workspace) Save() error {
	ios := w.Config.IOS
	if ios.Xcode != nil {
		if err := ios.Xcode.WriteSync(); err != nil {
			return fmt.Errorf("write xcode project: %w", err)
		}
	}
	if ios.InfoPlist != nil {
		if err := writePlist(w.infoPlistPath, ios.InfoPlist, w.infoPlistFormat); err != nil {
			return err
		}
	}
	if ios.Entitlements != nil && (len(ios.Entitlements) > 0 || exists(w.entitlementsPath)) {
		if err := os.MkdirAll(filepath.Dir(w.entitlementsPath), 0755); err != nil {
			return err
		}
		if err := writePlist(w.entitlementsPath, ios.Entitlements, w.entitlementsFormat); err != nil {
			return err
		}
	}
	if ios.Podfile != nil && *ios.Podfile != w.podfileOriginal {
		if err := os.WriteFile(w.podfilePath, []byte(*ios.Podfile), 0644); err != nil {
			return fmt.Errorf("write Podfile: %w", err)
		}
	}

	android := w.Config.Android
	if android.Manifest != nil {
		if err := android.Manifest.Save(w.manifestPath); err != nil {
			return err
		}
	}
	for _, script := range []*gradle.Script{android.ProjectBuildGradle, android.AppBuildGradle} {
		if script == nil {
			continue
		}
		if err := script.Save(); err != nil {
			return err
		}
	}
	return nil
}
