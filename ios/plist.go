package ios

const (
	apsEnvironmentKey      = "aps-environment"
	timeSensitiveKey       = "com.apple.developer.usernotifications.time-sensitive"
	backgroundModesKey     = "UIBackgroundModes"
	remoteNotificationMode = "remote-notification"
)

// AddCapabilities sets the push entitlements Xcode adds for the Push
// Notifications and Time Sensitive Notifications capabilities.
func AddCapabilities(entitlements map[string]interface{}, appEnvironment string, timeSensitive bool) {
	entitlements[apsEnvironmentKey] = appEnvironment
	if timeSensitive {
		entitlements[timeSensitiveKey] = true
	}
}

// AddBackgroundModes appends remote-notification to UIBackgroundModes once.
func AddBackgroundModes(infoPlist map[string]interface{}) bool {
	var modes []interface{}
	switch existing := infoPlist[backgroundModesKey].(type) {
	case []interface{}:
		modes = existing
	case []string:
		for _, mode := range existing {
			modes = append(modes, mode)
		}
	}
	for _, mode := range modes {
		if mode == remoteNotificationMode {
			return false
		}
	}
	infoPlist[backgroundModesKey] = append(modes, remoteNotificationMode)
	return true
}
