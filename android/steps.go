package android

import (
	"github.com/soapywu/pushkit/gradle"
	"github.com/soapywu/pushkit/pipeline"
)

func skipped(config *pipeline.Config, step, artifact string) (*pipeline.Config, error) {
	config.Log().Debug("Step {Step} skipped, {Artifact} not loaded", step, artifact)
	return config, nil
}

// PermissionsStep adds the POST_NOTIFICATIONS permission.
func PermissionsStep() pipeline.Step {
	const name = "android permissions"
	return pipeline.NewStep(name, pipeline.PlatformAndroid, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.Android.Manifest == nil {
			return skipped(config, name, "AndroidManifest.xml")
		}
		if config.Android.Manifest.AddUsesPermission(PostNotificationsPermission) {
			config.Log().Debug("Added permission {Permission}", PostNotificationsPermission)
		}
		return config, nil
	})
}

// ProjectBuildGradleStep adds the google-services classpath to the project
// build script.
func ProjectBuildGradleStep() pipeline.Step {
	const name = "android project build.gradle"
	return pipeline.NewStep(name, pipeline.PlatformAndroid, func(config *pipeline.Config) (*pipeline.Config, error) {
		script := config.Android.ProjectBuildGradle
		if script == nil {
			return skipped(config, name, "project build.gradle")
		}
		if script.Language != gradle.Groovy {
			config.AddWarningAndroid(pluginTag, "Cannot automatically configure project build.gradle if it's not groovy")
			return config, nil
		}
		script.Contents = gradle.AddProjectDependency(script.Contents, gradle.Dependency{
			Classpath: GoogleServicesClasspath,
			Version:   GoogleServicesVersion,
		})
		return config, nil
	})
}

// AppBuildGradleStep applies the google-services plugin and adds Firebase
// messaging with its BOM to the app build script.
func AppBuildGradleStep() pipeline.Step {
	const name = "android app build.gradle"
	return pipeline.NewStep(name, pipeline.PlatformAndroid, func(config *pipeline.Config) (*pipeline.Config, error) {
		script := config.Android.AppBuildGradle
		if script == nil {
			return skipped(config, name, "app build.gradle")
		}
		if script.Language != gradle.Groovy {
			config.AddWarningAndroid(pluginTag, "Cannot automatically configure app build.gradle if it's not groovy")
			return config, nil
		}
		contents := gradle.AddApplyPlugin(script.Contents, GoogleServicesPlugin)
		contents = gradle.AddAppDependency(contents, gradle.Dependency{Classpath: FirebaseMessagingClasspath})
		contents = gradle.AddAppDependency(contents, gradle.Dependency{
			Classpath:      FirebaseBOMClasspath,
			Version:        FirebaseBOMVersion,
			Implementation: "platform('" + FirebaseBOMClasspath + ":" + FirebaseBOMVersion + "')",
		})
		script.Contents = contents
		return config, nil
	})
}

// CopyGoogleServicesStep copies the configured google-services.json into
// the app module.
func CopyGoogleServicesStep() pipeline.Step {
	const name = "android google-services.json"
	return pipeline.NewStep(name, pipeline.PlatformAndroid, func(config *pipeline.Config) (*pipeline.Config, error) {
		if !config.Android.Loaded() {
			return skipped(config, name, "android project")
		}
		if config.Android.GoogleServicesFile == "" {
			config.AddWarningAndroid(pluginTag, "Path to google-services.json is not defined, so push notifications will not be enabled.  To enable push notifications, please specify the `expo.android.googleServicesFile` field in app.json.")
			return config, nil
		}
		dest, err := CopyGoogleServices(config.ProjectRoot, config.Android.GoogleServicesFile, config.Android.Root, config.DryRun)
		if err != nil {
			return nil, err
		}
		config.Log().Info("Copied google-services.json to {Destination}", dest)
		return config, nil
	})
}

// DeepLinksStep makes the main activity singleTask so that a deep link
// reuses the running activity.
func DeepLinksStep() pipeline.Step {
	const name = "android deep links"
	return pipeline.NewStep(name, pipeline.PlatformAndroid, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.Android.Manifest == nil {
			return skipped(config, name, "AndroidManifest.xml")
		}
		if !config.Android.Manifest.SetMainActivityLaunchMode(SingleTaskLaunchMode) {
			config.AddWarningAndroid(pluginTag, "No activity found in AndroidManifest.xml, launchMode was not set.")
		}
		return config, nil
	})
}

type MetaData struct {
	Name  string
	Value string
}

// MetaDataStep adds application meta-data entries, keeping existing ones.
func MetaDataStep(name string, entries []MetaData) pipeline.Step {
	return pipeline.NewStep(name, pipeline.PlatformAndroid, func(config *pipeline.Config) (*pipeline.Config, error) {
		if config.Android.Manifest == nil {
			return skipped(config, name, "AndroidManifest.xml")
		}
		for _, entry := range entries {
			added, err := config.Android.Manifest.AddMetaData(entry.Name, entry.Value)
			if err != nil {
				return nil, err
			}
			if !added {
				config.Log().Debug("Meta-data {Name} already present", entry.Name)
			}
		}
		return config, nil
	})
}

// PushNotificationSteps is the Android push setup in the order it must run.
func PushNotificationSteps() []pipeline.Step {
	return []pipeline.Step{
		PermissionsStep(),
		ProjectBuildGradleStep(),
		AppBuildGradleStep(),
		CopyGoogleServicesStep(),
	}
}
