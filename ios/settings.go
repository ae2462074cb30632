package ios

import (
	"github.com/soapywu/pushkit/pbxproj"
)

// BuildSettingsSnapshot carries the signing and Swift settings of the host
// application over to the extension target.
type BuildSettingsSnapshot struct {
	SwiftVersion     string
	CodeSignStyle    string
	CodeSignIdentity string
	// OtherCodeSignFlags keeps the raw setting, a string or a list.
	OtherCodeSignFlags           interface{}
	DevelopmentTeam              string
	ProvisioningProfileSpecifier string
}

// ExtractBuildSettings returns the settings of the first configuration, in
// file order, that has a SWIFT_VERSION. This is a best-effort guess at the
// host application's configuration, not a target lookup: a project with
// several Swift targets gets whichever comes first. The snapshot is empty
// when no configuration qualifies.
func ExtractBuildSettings(configs []pbxproj.BuildConfiguration) BuildSettingsSnapshot {
	for _, config := range configs {
		settings := config.Settings
		if settings.Get("SWIFT_VERSION") == "" {
			continue
		}
		return BuildSettingsSnapshot{
			SwiftVersion:                 settings.Get("SWIFT_VERSION"),
			CodeSignStyle:                settings.Get("CODE_SIGN_STYLE"),
			CodeSignIdentity:             settings.Get("CODE_SIGN_IDENTITY"),
			OtherCodeSignFlags:           rawSetting(settings, "OTHER_CODE_SIGN_FLAGS"),
			DevelopmentTeam:              settings.Get("DEVELOPMENT_TEAM"),
			ProvisioningProfileSpecifier: settings.Get("PROVISIONING_PROFILE_SPECIFIER"),
		}
	}
	return BuildSettingsSnapshot{}
}

func rawSetting(settings pbxproj.BuildSettings, key string) interface{} {
	value, ok := settings.Raw(key)
	if !ok {
		return nil
	}
	return rawCopy(value)
}

func (s BuildSettingsSnapshot) IsEmpty() bool {
	return s.SwiftVersion == "" && s.CodeSignStyle == "" && s.CodeSignIdentity == "" &&
		s.OtherCodeSignFlags == nil && s.DevelopmentTeam == "" && s.ProvisioningProfileSpecifier == ""
}

// ApplyTo copies every non-empty field onto settings and always sets
// CODE_SIGN_ENTITLEMENTS.
func (s BuildSettingsSnapshot) ApplyTo(settings pbxproj.BuildSettings, entitlements string) {
	setIfPresent := func(key, value string) {
		if value != "" {
			settings.Set(key, value)
		}
	}
	setIfPresent("SWIFT_VERSION", s.SwiftVersion)
	settings.Set(codeSignEntitlements, entitlements)
	setIfPresent("CODE_SIGN_STYLE", s.CodeSignStyle)
	setIfPresent("CODE_SIGN_IDENTITY", s.CodeSignIdentity)
	if s.OtherCodeSignFlags != nil {
		settings.Set("OTHER_CODE_SIGN_FLAGS", rawCopy(s.OtherCodeSignFlags))
	}
	setIfPresent("DEVELOPMENT_TEAM", s.DevelopmentTeam)
	setIfPresent("PROVISIONING_PROFILE_SPECIFIER", s.ProvisioningProfileSpecifier)
}

func rawCopy(value interface{}) interface{} {
	if list, ok := value.([]interface{}); ok {
		return append([]interface{}(nil), list...)
	}
	return value
}

const codeSignEntitlements = "CODE_SIGN_ENTITLEMENTS"

// LinkAppEntitlements sets CODE_SIGN_ENTITLEMENTS to entitlementsFile on
// every configuration of target that has none, and reports whether any
// configuration changed. Existing values are kept.
func LinkAppEntitlements(project *pbxproj.PbxProject, target, entitlementsFile string) bool {
	linked := false
	for _, config := range project.ConfigurationsForTarget(target) {
		if config.Settings.Has(codeSignEntitlements) {
			continue
		}
		project.UpdateBuildProperty(codeSignEntitlements, entitlementsFile, config.Name, target)
		linked = true
	}
	return linked
}
