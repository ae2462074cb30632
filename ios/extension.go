package ios

import (
	"fmt"

	"github.com/soapywu/pushkit/logger"
	"github.com/soapywu/pushkit/pbxproj"
)

// XcodeProject is the part of the project graph the extension mutator
// reads and writes. *pbxproj.PbxProject implements it.
type XcodeProject interface {
	TargetByName(name string) (pbxproj.Target, bool)
	EnsureObjectSection(isa string)
	BuildConfigurations() []pbxproj.BuildConfiguration
	GroupByName(name string) (pbxproj.Group, bool)
	Groups() []pbxproj.Group
	AddTarget(name string, targetType pbxproj.TargetType, subfolder, bundleID string) (pbxproj.Target, error)
	AddPbxGroup(files []string, name, path, sourceTree string) pbxproj.Group
	AddToPbxGroup(child pbxproj.Group, parent pbxproj.ObjectID) error
	ConfigurationsForProduct(productName string) []pbxproj.BuildConfiguration
	AddBuildPhase(files []string, phaseType pbxproj.BuildPhaseType, comment string, target pbxproj.ObjectID) (pbxproj.ObjectID, error)
}

var _ XcodeProject = (*pbxproj.PbxProject)(nil)

// RootGroupSelector picks the groups the new extension group is attached to.
type RootGroupSelector interface {
	SelectRootGroups(groups []pbxproj.Group) []pbxproj.Group
}

type RootGroupSelectorFunc func(groups []pbxproj.Group) []pbxproj.Group

func (f RootGroupSelectorFunc) SelectRootGroups(groups []pbxproj.Group) []pbxproj.Group {
	return f(groups)
}

// AnonymousGroupSelector selects every group with neither a name nor a
// path. Usually that is only the main group, but any other anonymous group
// matches too.
var AnonymousGroupSelector = RootGroupSelectorFunc(func(groups []pbxproj.Group) []pbxproj.Group {
	var out []pbxproj.Group
	for _, group := range groups {
		if group.Anonymous() {
			out = append(out, group)
		}
	}
	return out
})

// MainGroupSelector selects the project's declared mainGroup only.
var MainGroupSelector = RootGroupSelectorFunc(func(groups []pbxproj.Group) []pbxproj.Group {
	for _, group := range groups {
		if group.Main {
			return []pbxproj.Group{group}
		}
	}
	return nil
})

// Extension describes the app extension target to inject.
type Extension struct {
	Name string
	// HostBundleIdentifier is the application's bundle id; the extension's
	// is <HostBundleIdentifier>.<Name>.
	HostBundleIdentifier string
	Files                []string
	SourceFiles          []string
	Frameworks           []string
	EntitlementsFile     string
}

// NotificationServiceExtension is the rich push extension for hostBundleID.
func NotificationServiceExtension(hostBundleID string) Extension {
	return Extension{
		Name:                 ExtensionName,
		HostBundleIdentifier: hostBundleID,
		Files:                ExtensionFiles,
		SourceFiles:          []string{MainFileName},
		Frameworks:           []string{UserNotificationsFramework},
		EntitlementsFile:     EntitlementsFileName,
	}
}

func (e Extension) BundleIdentifier() string {
	return e.HostBundleIdentifier + "." + e.Name
}

func (e Extension) EntitlementsPath() string {
	return e.Name + "/" + e.EntitlementsFile
}

type Result struct {
	// Skipped is set when a target named after the extension already exists.
	Skipped bool
	// StrayGroup is set when a group named after the extension exists without
	// its target. Nothing is added in that case.
	StrayGroup bool
	Target     pbxproj.Target
	Group      pbxproj.Group
	// Parents are the groups the extension group was attached to. Empty
	// means the group is not reachable from the navigator.
	Parents        []pbxproj.Group
	Configurations []pbxproj.BuildConfiguration
	BuildPhases    []pbxproj.ObjectID
}

type mutatorOptions struct {
	selector RootGroupSelector
	log      logger.Logger
}

type MutatorOption func(o *mutatorOptions)

func WithRootGroupSelector(selector RootGroupSelector) MutatorOption {
	return func(o *mutatorOptions) {
		o.selector = selector
	}
}

func WithLogger(log logger.Logger) MutatorOption {
	return func(o *mutatorOptions) {
		o.log = log
	}
}

// AddNotificationServiceExtension adds ext as an app extension target with
// its own group, signing settings copied from the host application, and
// Sources and Frameworks build phases. An existing target of the same name
// means the extension was added before and the project is left untouched.
func AddNotificationServiceExtension(project XcodeProject, ext Extension, opts ...MutatorOption) (Result, error) {
	options := mutatorOptions{
		selector: AnonymousGroupSelector,
		log:      logger.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	log := options.log.ForContext("Target", ext.Name)

	if _, exists := project.TargetByName(ext.Name); exists {
		log.Info("{Target} already exists in project, skipping", ext.Name)
		return Result{Skipped: true}, nil
	}

	project.EnsureObjectSection("PBXTargetDependency")
	project.EnsureObjectSection("PBXContainerItemProxy")

	snapshot := ExtractBuildSettings(project.BuildConfigurations())
	if snapshot.IsEmpty() {
		log.Warn("No configuration with SWIFT_VERSION found, {Target} keeps default signing settings", ext.Name)
	}

	if _, exists := project.GroupByName(ext.Name); exists {
		log.Warn("Group {Target} exists without a target, skipping", ext.Name)
		return Result{StrayGroup: true}, nil
	}

	var result Result
	target, err := project.AddTarget(ext.Name, pbxproj.TargetTypeAppExtension, ext.Name, ext.BundleIdentifier())
	if err != nil {
		return result, fmt.Errorf("add target %s: %w", ext.Name, err)
	}
	result.Target = target
	log.Debug("Added target {TargetID} with bundle id {BundleID}", target.ID, target.BundleID)

	group := project.AddPbxGroup(ext.Files, ext.Name, ext.Name, "")
	result.Group = group
	for _, parent := range options.selector.SelectRootGroups(project.Groups()) {
		if parent.ID == group.ID {
			continue
		}
		if err := project.AddToPbxGroup(group, parent.ID); err != nil {
			return result, fmt.Errorf("attach group %s to %s: %w", ext.Name, parent.ID, err)
		}
		result.Parents = append(result.Parents, parent)
	}

	for _, config := range project.ConfigurationsForProduct(ext.Name) {
		snapshot.ApplyTo(config.Settings, ext.EntitlementsPath())
		result.Configurations = append(result.Configurations, config)
	}

	sources, err := project.AddBuildPhase(ext.SourceFiles, pbxproj.SourcesBuildPhase, "Sources", target.ID)
	if err != nil {
		return result, fmt.Errorf("add sources build phase: %w", err)
	}
	frameworks, err := project.AddBuildPhase(ext.Frameworks, pbxproj.FrameworksBuildPhase, "Frameworks", target.ID)
	if err != nil {
		return result, fmt.Errorf("add frameworks build phase: %w", err)
	}
	result.BuildPhases = []pbxproj.ObjectID{sources, frameworks}

	log.Info("Added {Target} to the Xcode project", ext.Name)
	return result, nil
}
