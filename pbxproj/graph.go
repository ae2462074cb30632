package pbxproj

import (
	"github.com/soapywu/pushkit/pbxparser"
)

// ObjectID is the 24 hex character key of an entry in the objects table.
type ObjectID string

func (id ObjectID) String() string {
	return string(id)
}

type CommentValue struct {
	Value   string
	Comment string
}

func (c CommentValue) ToObject() pbxparser.Object {
	return pbxparser.CommentValueObject(c.Value, c.Comment)
}

type TargetType string

const (
	TargetTypeApplication     TargetType = "application"
	TargetTypeAppExtension    TargetType = "app_extension"
	TargetTypeBundle          TargetType = "bundle"
	TargetTypeCommandLineTool TargetType = "command_line_tool"
	TargetTypeDynamicLibrary  TargetType = "dynamic_library"
	TargetTypeFramework       TargetType = "framework"
	TargetTypeStaticLibrary   TargetType = "static_library"
	TargetTypeUnitTestBundle  TargetType = "unit_test_bundle"
)

type BuildPhaseType string

const (
	SourcesBuildPhase    BuildPhaseType = "PBXSourcesBuildPhase"
	FrameworksBuildPhase BuildPhaseType = "PBXFrameworksBuildPhase"
	ResourcesBuildPhase  BuildPhaseType = "PBXResourcesBuildPhase"
	CopyFilesBuildPhase  BuildPhaseType = "PBXCopyFilesBuildPhase"
)

// Target is a read-only view of a PBXNativeTarget.
type Target struct {
	ID                ObjectID
	Name              string
	ProductType       string
	BundleID          string
	ConfigurationList ObjectID
	BuildPhases       []ObjectID
}

// Group is a read-only view of a PBXGroup. Main marks the project's
// mainGroup.
type Group struct {
	ID       ObjectID
	Name     string
	Path     string
	Children []ObjectID
	Main     bool
}

// Anonymous reports whether the group has neither a name nor a path, which
// is how Xcode writes the project's root group.
func (g Group) Anonymous() bool {
	return g.Name == "" && g.Path == ""
}

// DisplayName is what Xcode shows in the navigator.
func (g Group) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.Path
}

// BuildConfiguration is an XCBuildConfiguration. Product is the unquoted
// PRODUCT_NAME; it is how configurations are matched to targets created by
// this package.
type BuildConfiguration struct {
	ID       ObjectID
	Name     string
	Product  string
	Settings BuildSettings
}

// BuildSettings writes through to the buildSettings dictionary it was read
// from.
type BuildSettings struct {
	obj pbxparser.Object
}

func NewBuildSettings() BuildSettings {
	return BuildSettings{obj: pbxparser.NewObject()}
}

func newBuildSettingsFrom(obj pbxparser.Object) BuildSettings {
	return BuildSettings{obj: obj}
}

// Get returns the raw value of a scalar setting, quotes included.
func (s BuildSettings) Get(key string) string {
	value, ok := scalarString(s.obj.ForceGet(key))
	if !ok {
		return ""
	}
	return value
}

// Value returns the unquoted value of a scalar setting.
func (s BuildSettings) Value(key string) string {
	return unquoted(s.Get(key))
}

func (s BuildSettings) Raw(key string) (interface{}, bool) {
	return s.obj.Get(key)
}

func (s BuildSettings) Has(key string) bool {
	return s.obj.Has(key)
}

func (s BuildSettings) Set(key string, value interface{}) {
	if s.obj.IsNil() {
		return
	}
	if str, ok := value.(string); ok {
		value = quoteIfNeeded(str)
	}
	s.obj.Set(key, value)
}

func (s BuildSettings) Delete(key string) {
	if s.obj.IsNil() {
		return
	}
	s.obj.Delete(key)
}

func (s BuildSettings) Keys() []string {
	if s.obj.IsNil() {
		return nil
	}
	var keys []string
	s.obj.ForeachWithFilter(func(key string, _ interface{}) pbxparser.IterateActionType {
		keys = append(keys, key)
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
	return keys
}
