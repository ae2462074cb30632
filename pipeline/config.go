package pipeline

import (
	"github.com/soapywu/pushkit/gradle"
	"github.com/soapywu/pushkit/logger"
	"github.com/soapywu/pushkit/manifest"
	"github.com/soapywu/pushkit/pbxproj"
)

// Config is the project configuration threaded through every step of a
// pass. Artifacts that were not loaded stay nil and the steps that need them
// become no-ops.
type Config struct {
	ProjectRoot string
	Name        string
	DryRun      bool

	IOS     IOSConfig
	Android AndroidConfig

	Warnings *Warnings
	Logger   logger.Logger
}

type IOSConfig struct {
	BundleIdentifier string
	// Root is the platform project root, usually <ProjectRoot>/ios.
	Root string

	// AppTarget is the application target of Xcode.
	AppTarget string
	// EntitlementsFile is the app entitlements path relative to Root, as
	// CODE_SIGN_ENTITLEMENTS spells it.
	EntitlementsFile string

	InfoPlist    map[string]interface{}
	Entitlements map[string]interface{}
	Xcode        *pbxproj.PbxProject
	Podfile      *string
}

func (c IOSConfig) Loaded() bool {
	return c.Root != ""
}

type AndroidConfig struct {
	Package            string
	GoogleServicesFile string
	// Root is the platform project root, usually <ProjectRoot>/android.
	Root string

	Manifest           *manifest.Document
	ProjectBuildGradle *gradle.Script
	AppBuildGradle     *gradle.Script
}

func (c AndroidConfig) Loaded() bool {
	return c.Root != ""
}

// NewConfig returns a Config with an empty warning channel and a logger
// that discards everything.
func NewConfig(projectRoot string) *Config {
	return &Config{
		ProjectRoot: projectRoot,
		Warnings:    NewWarnings(),
		Logger:      logger.NewNullLogger(),
	}
}

// Log returns the pass logger, never nil.
func (c *Config) Log() logger.Logger {
	if c.Logger == nil {
		c.Logger = logger.NewNullLogger()
	}
	return c.Logger
}

func (c *Config) warnings() *Warnings {
	if c.Warnings == nil {
		c.Warnings = NewWarnings()
	}
	return c.Warnings
}

// AddWarningAndroid records a non-fatal Android warning and logs it.
func (c *Config) AddWarningAndroid(tag, text string) {
	c.warnings().AddWarningAndroid(tag, text)
	c.Log().Warn("{Tag}: {Warning}", tag, text)
}

// AddWarningIOS records a non-fatal iOS warning and logs it.
func (c *Config) AddWarningIOS(tag, text string) {
	c.warnings().AddWarningIOS(tag, text)
	c.Log().Warn("{Tag}: {Warning}", tag, text)
}
