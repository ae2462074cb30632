package ios

import (
	"testing"

	"github.com/soapywu/pushkit/pbxproj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extName() Extension {
	return Extension{
		Name:                 "ExtName",
		HostBundleIdentifier: "com.example.app",
		Files:                []string{"NotificationService.swift", "ExtName-Info.plist", "ExtName.entitlements"},
		SourceFiles:          []string{"NotificationService.swift"},
		Frameworks:           []string{"UserNotifications.framework"},
		EntitlementsFile:     "ExtName.entitlements",
	}
}

func TestExistingTargetSkipsAllMutations(t *testing.T) {
	project := newFakeProject()
	project.targets = []pbxproj.Target{{ID: "EXISTING", Name: "ExtName"}}
	project.groups = []pbxproj.Group{{ID: "ROOT", Main: true}}

	result, err := AddNotificationServiceExtension(project, extName())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, []string{"TargetByName"}, project.calls)
	assert.Empty(t, project.mutations())
}

func TestBuildSettingsPropagation(t *testing.T) {
	project := newFakeProject()
	project.addConfiguration(map[string]string{
		"SWIFT_VERSION":    "5.0",
		"CODE_SIGN_STYLE":  "Automatic",
		"DEVELOPMENT_TEAM": "TEAM123",
	})
	project.addConfiguration(map[string]string{"PRODUCT_NAME": `"ExtName"`})
	project.groups = []pbxproj.Group{{ID: "ROOT", Main: true}}

	result, err := AddNotificationServiceExtension(project, extName())
	require.NoError(t, err)
	require.Len(t, result.Configurations, 1)

	settings := project.configs[1].Settings
	assert.Equal(t, "5.0", settings.Get("SWIFT_VERSION"))
	assert.Equal(t, "Automatic", settings.Get("CODE_SIGN_STYLE"))
	assert.Equal(t, "TEAM123", settings.Get("DEVELOPMENT_TEAM"))
	assert.Equal(t, "ExtName/ExtName.entitlements", settings.Get("CODE_SIGN_ENTITLEMENTS"))
	assert.False(t, settings.Has("CODE_SIGN_IDENTITY"))
	assert.False(t, settings.Has("OTHER_CODE_SIGN_FLAGS"))
	assert.False(t, settings.Has("PROVISIONING_PROFILE_SPECIFIER"))

	assert.False(t, project.configs[0].Settings.Has("CODE_SIGN_ENTITLEMENTS"))
}

func TestMutationOrder(t *testing.T) {
	project := newFakeProject()
	project.addConfiguration(map[string]string{"PRODUCT_NAME": "ExtName"})
	project.groups = []pbxproj.Group{{ID: "ROOT", Main: true}}

	result, err := AddNotificationServiceExtension(project, extName())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"TargetByName",
		"EnsureObjectSection",
		"EnsureObjectSection",
		"BuildConfigurations",
		"GroupByName",
		"AddTarget",
		"AddPbxGroup",
		"Groups",
		"AddToPbxGroup",
		"ConfigurationsForProduct",
		"AddBuildPhase",
		"AddBuildPhase",
	}, project.calls)
	assert.True(t, project.sections["PBXTargetDependency"])
	assert.True(t, project.sections["PBXContainerItemProxy"])

	assert.Equal(t, "com.example.app.ExtName", result.Target.BundleID)
	assert.Equal(t, string(pbxproj.TargetTypeAppExtension), result.Target.ProductType)
	assert.Equal(t, []string{"NotificationService.swift"}, project.phases[pbxproj.SourcesBuildPhase])
	assert.Equal(t, []string{"UserNotifications.framework"}, project.phases[pbxproj.FrameworksBuildPhase])
	assert.Equal(t, []pbxproj.ObjectID{"PHASESources", "PHASEFrameworks"}, result.BuildPhases)

	// no SWIFT_VERSION anywhere: only the entitlements are set
	settings := project.configs[0].Settings
	assert.False(t, settings.Has("SWIFT_VERSION"))
	assert.Equal(t, "ExtName/ExtName.entitlements", settings.Get("CODE_SIGN_ENTITLEMENTS"))
}

func TestStrayGroupSkipsTargetCreation(t *testing.T) {
	project := newFakeProject()
	project.groups = []pbxproj.Group{{ID: "ROOT", Main: true}, {ID: "STRAY", Path: "ExtName"}}

	result, err := AddNotificationServiceExtension(project, extName())
	require.NoError(t, err)
	assert.True(t, result.StrayGroup)
	assert.Equal(t, []string{"EnsureObjectSection", "EnsureObjectSection"}, project.mutations())
}

func TestRootGroupSelectors(t *testing.T) {
	groups := []pbxproj.Group{
		{ID: "ROOT", Main: true},
		{ID: "APP", Name: "HelloWorld"},
		{ID: "OTHER"},
		{ID: "SOURCES", Path: "Sources"},
	}

	tests := []struct {
		name     string
		selector RootGroupSelector
		parents  []pbxproj.ObjectID
	}{
		{name: "anonymous", selector: AnonymousGroupSelector, parents: []pbxproj.ObjectID{"ROOT", "OTHER"}},
		{name: "main", selector: MainGroupSelector, parents: []pbxproj.ObjectID{"ROOT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := newFakeProject()
			project.groups = append([]pbxproj.Group(nil), groups...)

			result, err := AddNotificationServiceExtension(project, extName(), WithRootGroupSelector(tt.selector))
			require.NoError(t, err)

			var parents []pbxproj.ObjectID
			for _, parent := range result.Parents {
				parents = append(parents, parent.ID)
				assert.Equal(t, []pbxproj.ObjectID{"NEWGROUP"}, project.attached[parent.ID])
			}
			assert.Equal(t, tt.parents, parents)
		})
	}
}

func TestNoRootGroupLeavesGroupDetached(t *testing.T) {
	project := newFakeProject()
	project.groups = []pbxproj.Group{{ID: "APP", Name: "HelloWorld"}}

	result, err := AddNotificationServiceExtension(project, extName())
	require.NoError(t, err)
	assert.Empty(t, result.Parents)
	assert.Equal(t, "ExtName", result.Group.Name)
	assert.Len(t, result.BuildPhases, 2)
}

func loadProject(t *testing.T) *pbxproj.PbxProject {
	t.Helper()
	project := pbxproj.NewPbxProject("../pbxproj/testdata/project.pbxproj")
	require.NoError(t, project.Parse())
	return project
}

func TestAddNotificationServiceExtensionToProject(t *testing.T) {
	project := loadProject(t)

	result, err := AddNotificationServiceExtension(project, NotificationServiceExtension("com.example.helloworld"))
	require.NoError(t, err)
	require.False(t, result.Skipped)

	target, ok := project.TargetByName(ExtensionName)
	require.True(t, ok)
	assert.Equal(t, "com.example.helloworld.IterableExpoRichPush", target.BundleID)
	assert.Equal(t, result.BuildPhases, target.BuildPhases)
	assert.Equal(t, []string{"NotificationService.swift in Sources"}, project.BuildPhaseFiles(target.BuildPhases[0]))
	assert.Equal(t, []string{"UserNotifications.framework in Frameworks"}, project.BuildPhaseFiles(target.BuildPhases[1]))

	require.Len(t, result.Parents, 1)
	assert.Equal(t, pbxproj.ObjectID("83CBB9F61A601CBA00E9B192"), result.Parents[0].ID)

	group, ok := project.GroupByName(ExtensionName)
	require.True(t, ok)
	assert.Len(t, group.Children, 3)

	configs := project.ConfigurationsForProduct(ExtensionName)
	require.Len(t, configs, 2)
	for _, config := range configs {
		assert.Equal(t, "5.0", config.Settings.Get("SWIFT_VERSION"))
		assert.Equal(t, "Automatic", config.Settings.Get("CODE_SIGN_STYLE"))
		assert.Equal(t, `"Apple Development"`, config.Settings.Get("CODE_SIGN_IDENTITY"))
		assert.Equal(t, "ABCDE12345", config.Settings.Get("DEVELOPMENT_TEAM"))
		assert.Equal(t, "IterableExpoRichPush/IterableExpoRichPush.entitlements", config.Settings.Get("CODE_SIGN_ENTITLEMENTS"))
	}

	host, ok := project.TargetByName("HelloWorld")
	require.True(t, ok)
	assert.Equal(t, []string{"HelloWorld/HelloWorld.entitlements"}, project.GetBuildProperty("CODE_SIGN_ENTITLEMENTS", "Debug", host.Name))
}

func TestAddNotificationServiceExtensionIsIdempotent(t *testing.T) {
	project := loadProject(t)

	_, err := AddNotificationServiceExtension(project, NotificationServiceExtension("com.example.helloworld"))
	require.NoError(t, err)
	once := string(project.Bytes())

	result, err := AddNotificationServiceExtension(project, NotificationServiceExtension("com.example.helloworld"))
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, once, string(project.Bytes()))

	reparsed := pbxproj.NewPbxProject("reparsed.pbxproj")
	require.NoError(t, reparsed.ParseBytes([]byte(once)))
	result, err = AddNotificationServiceExtension(reparsed, NotificationServiceExtension("com.example.helloworld"))
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, once, string(reparsed.Bytes()))
}
