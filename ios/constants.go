package ios

const (
	// ExtensionName names the notification service extension target, its
	// group and its folder under the iOS project root.
	ExtensionName = "IterableExpoRichPush"

	MainFileName         = "NotificationService.swift"
	PlistFileName        = ExtensionName + "-Info.plist"
	EntitlementsFileName = ExtensionName + ".entitlements"

	// ExtensionPod is the pod the extension target links against.
	ExtensionPod = "Iterable-iOS-AppExtensions"

	UserNotificationsFramework = "UserNotifications.framework"

	pluginTag = "@iterable/expo-plugin"
)

// ExtensionFiles are the files of the extension group, in group order.
var ExtensionFiles = []string{MainFileName, PlistFileName, EntitlementsFileName}

const mainFileContent = `import UserNotifications
import IterableAppExtensions

class NotificationService: ITBNotificationServiceExtension {}`

const plistContent = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDevelopmentRegion</key>
	<string>$(DEVELOPMENT_LANGUAGE)</string>
	<key>CFBundleDisplayName</key>
	<string>` + ExtensionName + `</string>
	<key>CFBundleExecutable</key>
	<string>$(EXECUTABLE_NAME)</string>
	<key>CFBundleIdentifier</key>
	<string>$(PRODUCT_BUNDLE_IDENTIFIER)</string>
	<key>CFBundleInfoDictionaryVersion</key>
	<string>6.0</string>
	<key>CFBundleName</key>
	<string>$(PRODUCT_NAME)</string>
	<key>CFBundlePackageType</key>
	<string>XPC!</string>
	<key>CFBundleShortVersionString</key>
	<string>1.0.0</string>
	<key>CFBundleVersion</key>
	<string>1</string>
	<key>NSExtension</key>
	<dict>
		<key>NSExtensionPointIdentifier</key>
		<string>com.apple.usernotifications.service</string>
		<key>NSExtensionPrincipalClass</key>
		<string>$(PRODUCT_MODULE_NAME).NotificationService</string>
	</dict>
</dict>
</plist>`

var extensionEntitlements = map[string]interface{}{
	"com.apple.security.app-sandbox":    true,
	"com.apple.security.network.client": true,
}
