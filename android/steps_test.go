package android

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soapywu/pushkit/gradle"
	"github.com/soapywu/pushkit/manifest"
	"github.com/soapywu/pushkit/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func androidConfig(t *testing.T) *pipeline.Config {
	t.Helper()
	config := pipeline.NewConfig(t.TempDir())

	doc, err := manifest.Load(filepath.Join("..", "manifest", "testdata", "AndroidManifest.xml"))
	require.NoError(t, err)
	project, err := gradle.Load(filepath.Join("..", "gradle", "testdata", "build.gradle"))
	require.NoError(t, err)
	app, err := gradle.Load(filepath.Join("..", "gradle", "testdata", "app.build.gradle"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(config.ProjectRoot, "google-services.json"), []byte(`{"project_info":{}}`), 0644))
	config.Android = pipeline.AndroidConfig{
		Package:            "com.example.helloworld",
		GoogleServicesFile: "./google-services.json",
		Root:               filepath.Join(config.ProjectRoot, "android"),
		Manifest:           doc,
		ProjectBuildGradle: project,
		AppBuildGradle:     app,
	}
	return config
}

func TestPushNotificationSteps(t *testing.T) {
	config := androidConfig(t)

	out, err := pipeline.Run(config, PushNotificationSteps())
	require.NoError(t, err)
	assert.Zero(t, out.Warnings.Len())

	assert.Contains(t, out.Android.Manifest.UsesPermissions(), PostNotificationsPermission)
	assert.Contains(t, out.Android.ProjectBuildGradle.Contents, "classpath('com.google.gms:google-services:4.3.10')")
	app := out.Android.AppBuildGradle.Contents
	assert.Contains(t, app, "implementation 'com.google.firebase:firebase-messaging'")
	assert.Contains(t, app, "implementation platform('com.google.firebase:firebase-bom:33.1.0')")
	assert.True(t, strings.HasSuffix(app, "\napply plugin: 'com.google.gms.google-services'"))

	data, err := os.ReadFile(filepath.Join(out.Android.Root, "app", "google-services.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"project_info":{}}`, string(data))
}

func TestPushNotificationStepsAreIdempotent(t *testing.T) {
	config := androidConfig(t)
	_, err := pipeline.Run(config, PushNotificationSteps())
	require.NoError(t, err)

	manifestOnce, err := config.Android.Manifest.Bytes()
	require.NoError(t, err)
	projectOnce := config.Android.ProjectBuildGradle.Contents
	appOnce := config.Android.AppBuildGradle.Contents

	_, err = pipeline.Run(config, PushNotificationSteps())
	require.NoError(t, err)

	manifestTwice, err := config.Android.Manifest.Bytes()
	require.NoError(t, err)
	assert.Equal(t, string(manifestOnce), string(manifestTwice))
	assert.Equal(t, projectOnce, config.Android.ProjectBuildGradle.Contents)
	assert.Equal(t, appOnce, config.Android.AppBuildGradle.Contents)
	assert.Equal(t, 1, strings.Count(appOnce, "apply plugin: 'com.google.gms.google-services'"))
}

func TestKotlinScriptsWarn(t *testing.T) {
	config := androidConfig(t)
	config.Android.ProjectBuildGradle.Language = gradle.Kotlin
	config.Android.AppBuildGradle.Language = gradle.Kotlin
	projectBefore := config.Android.ProjectBuildGradle.Contents
	appBefore := config.Android.AppBuildGradle.Contents

	_, err := pipeline.Run(config, []pipeline.Step{ProjectBuildGradleStep(), AppBuildGradleStep()})
	require.NoError(t, err)

	assert.Equal(t, projectBefore, config.Android.ProjectBuildGradle.Contents)
	assert.Equal(t, appBefore, config.Android.AppBuildGradle.Contents)
	warnings := config.Warnings.ForPlatform(pipeline.PlatformAndroid)
	require.Len(t, warnings, 2)
	assert.Equal(t, "@iterable/expo-plugin", warnings[0].Tag)
	assert.Equal(t, "Cannot automatically configure project build.gradle if it's not groovy", warnings[0].Text)
	assert.Equal(t, "Cannot automatically configure app build.gradle if it's not groovy", warnings[1].Text)
}

func TestCopyGoogleServicesWithoutPath(t *testing.T) {
	config := androidConfig(t)
	config.Android.GoogleServicesFile = ""

	_, err := pipeline.Run(config, []pipeline.Step{CopyGoogleServicesStep(), DeepLinksStep()})
	require.NoError(t, err)
	require.Len(t, config.Warnings.All(), 1)
	assert.Contains(t, config.Warnings.All()[0].Text, "googleServicesFile")
	assert.Equal(t, []string{SingleTaskLaunchMode, ""}, config.Android.Manifest.LaunchModes())
}

func TestCopyGoogleServicesMissingFileAbortsPipeline(t *testing.T) {
	config := androidConfig(t)
	config.Android.GoogleServicesFile = "credentials/missing.json"
	ran := false

	_, err := pipeline.Run(config, []pipeline.Step{
		CopyGoogleServicesStep(),
		pipeline.NewStep("after", pipeline.PlatformAndroid, func(c *pipeline.Config) (*pipeline.Config, error) {
			ran = true
			return c, nil
		}),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGoogleServicesNotFound))
	assert.Contains(t, strings.ToLower(err.Error()), "cannot copy")
	assert.Contains(t, err.Error(), filepath.Join(config.ProjectRoot, "credentials", "missing.json"))
	assert.False(t, ran)
}

func TestCopyGoogleServicesDryRun(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "gs.json"), []byte("{}"), 0644))

	dest, err := CopyGoogleServices(root, "gs.json", filepath.Join(root, "android"), true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "android", "app", "google-services.json"), dest)
	assert.NoFileExists(t, dest)

	_, err = CopyGoogleServices(root, filepath.Join(root, "nope.json"), filepath.Join(root, "android"), true)
	assert.ErrorIs(t, err, ErrGoogleServicesNotFound)
}

func TestDeepLinksWithoutActivities(t *testing.T) {
	config := pipeline.NewConfig(t.TempDir())
	doc, err := manifest.Parse([]byte(`<manifest xmlns:android="http://schemas.android.com/apk/res/android"><application/></manifest>`))
	require.NoError(t, err)
	config.Android.Manifest = doc
	before, err := doc.Bytes()
	require.NoError(t, err)

	_, err = pipeline.Run(config, []pipeline.Step{DeepLinksStep()})
	require.NoError(t, err)

	after, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Len(t, config.Warnings.ForPlatform(pipeline.PlatformAndroid), 1)
}

func TestMetaDataStep(t *testing.T) {
	config := androidConfig(t)
	step := MetaDataStep("store config values", []MetaData{
		{Name: "ITERABLE_ENABLE_IN_APP_MESSAGES", Value: "true"},
		{Name: "expo.modules.updates.ENABLED", Value: "true"},
	})

	_, err := pipeline.Run(config, []pipeline.Step{step, step})
	require.NoError(t, err)

	value, ok := config.Android.Manifest.MetaData("ITERABLE_ENABLE_IN_APP_MESSAGES")
	require.True(t, ok)
	assert.Equal(t, "true", value)
	value, _ = config.Android.Manifest.MetaData("expo.modules.updates.ENABLED")
	assert.Equal(t, "false", value)
}

func TestStepsWithoutArtifactsAreNoOps(t *testing.T) {
	config := pipeline.NewConfig(t.TempDir())
	steps := append(PushNotificationSteps(), DeepLinksStep(), MetaDataStep("meta", []MetaData{{Name: "a", Value: "b"}}))

	_, err := pipeline.Run(config, steps)
	require.NoError(t, err)
	assert.Zero(t, config.Warnings.Len())
}
