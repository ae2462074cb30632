package ios

import (
	"path/filepath"

	"github.com/soapywu/pushkit/pipeline"
)

func skipped(config *pipeline.Config, step, artifact string) (*pipeline.Config, error) {
	config.Log().Debug("Step {Step} skipped, {Artifact} not loaded", step, artifact)
	return config, nil
}

// CapabilitiesStep adds the push entitlements to the app entitlements and
// links the entitlements file to the app target when it is not linked yet.
func CapabilitiesStep(appEnvironment string, timeSensitive bool) pipeline.Step {
	const name = "ios capabilities"
	return pipeline.NewStep(name, pipeline.PlatformIOS, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.IOS.Entitlements == nil {
			return skipped(config, name, "entitlements")
		}
		AddCapabilities(config.IOS.Entitlements, appEnvironment, timeSensitive)
		xcode := config.IOS.Xcode
		if xcode != nil && config.IOS.AppTarget != "" && config.IOS.EntitlementsFile != "" &&
			LinkAppEntitlements(xcode, config.IOS.AppTarget, config.IOS.EntitlementsFile) {
			config.Log().Info("Linked {File} to target {AppTarget}", config.IOS.EntitlementsFile, config.IOS.AppTarget)
		}
		return config, nil
	})
}

func BackgroundModesStep() pipeline.Step {
	const name = "ios background modes"
	return pipeline.NewStep(name, pipeline.PlatformIOS, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.IOS.InfoPlist == nil {
			return skipped(config, name, "Info.plist")
		}
		if AddBackgroundModes(config.IOS.InfoPlist) {
			config.Log().Debug("Added {Mode} to {Key}", remoteNotificationMode, backgroundModesKey)
		}
		return config, nil
	})
}

// InfoPlistStep sets values in Info.plist, replacing what is there.
func InfoPlistStep(name string, values map[string]interface{}) pipeline.Step {
	return pipeline.NewStep(name, pipeline.PlatformIOS, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.IOS.InfoPlist == nil {
			return skipped(config, name, "Info.plist")
		}
		for key, value := range values {
			config.IOS.InfoPlist[key] = value
		}
		return config, nil
	})
}

// ExtensionFilesStep writes the extension sources next to the Xcode project.
func ExtensionFilesStep() pipeline.Step {
	const name = "ios extension files"
	return pipeline.NewStep(name, pipeline.PlatformIOS, func(config *pipeline.Config) (*pipeline.Config, error) {
		if !config.IOS.Loaded() {
			return skipped(config, name, "ios project")
		}
		if config.DryRun {
			config.Log().Info("Dry run, not writing {Dir}", filepath.Join(config.IOS.Root, ExtensionName))
			return config, nil
		}
		written, err := WriteExtensionFiles(config.IOS.Root)
		if err != nil {
			return nil, err
		}
		for _, path := range written {
			config.Log().Info("Created {File}", path)
		}
		return config, nil
	})
}

// XcodeProjectStep adds the notification service extension target.
func XcodeProjectStep(opts ...MutatorOption) pipeline.Step {
	const name = "ios xcode project"
	return pipeline.NewStep(name, pipeline.PlatformIOS, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.IOS.Xcode == nil {
			return skipped(config, name, "Xcode project")
		}
		if config.IOS.BundleIdentifier == "" {
			config.AddWarningIOS(pluginTag, "ios.bundleIdentifier is not defined, so the "+ExtensionName+" target was not added.")
			return config, nil
		}

		ext := NotificationServiceExtension(config.IOS.BundleIdentifier)
		mutatorOpts := append([]MutatorOption{WithLogger(config.Log())}, opts...)
		result, err := AddNotificationServiceExtension(config.IOS.Xcode, ext, mutatorOpts...)
		if err != nil {
			return nil, err
		}
		switch {
		case result.StrayGroup:
			config.AddWarningIOS(pluginTag, "A group named "+ExtensionName+" exists without a matching target, so the target was not added.")
		case !result.Skipped && len(result.Parents) == 0:
			config.AddWarningIOS(pluginTag, "No root group found for "+ExtensionName+", its files will not show in the Xcode navigator.")
		}
		return config, nil
	})
}

func PodfileStep() pipeline.Step {
	const name = "ios podfile"
	return pipeline.NewStep(name, pipeline.PlatformIOS, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.IOS.Podfile == nil {
			return skipped(config, name, "Podfile")
		}
		patched := AddServiceToPodfile(*config.IOS.Podfile)
		config.IOS.Podfile = &patched
		return config, nil
	})
}

// PushNotificationSteps is the iOS push setup in the order it must run.
func PushNotificationSteps(appEnvironment string, timeSensitive bool) []pipeline.Step {
	return []pipeline.Step{
		CapabilitiesStep(appEnvironment, timeSensitive),
		BackgroundModesStep(),
		ExtensionFilesStep(),
		XcodeProjectStep(),
		PodfileStep(),
	}
}
