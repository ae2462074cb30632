package plugin

import (
	"strconv"

	"github.com/soapywu/pushkit/android"
	"github.com/soapywu/pushkit/ios"
	"github.com/soapywu/pushkit/pipeline"
)

const (
	RequestPermissionsKey  = "ITERABLE_REQUEST_PERMISSIONS_FOR_PUSH_NOTIFICATIONS"
	EnableInAppMessagesKey = "ITERABLE_ENABLE_IN_APP_MESSAGES"
	APIKeyKey              = "ITERABLE_API_KEY"
)

// StoreConfigValueSteps write the runtime flags read by the native SDK: as
// booleans in Info.plist and as "true"/"false" meta-data on Android.
func StoreConfigValueSteps(opts Options) []pipeline.Step {
	return []pipeline.Step{
		ios.InfoPlistStep("ios store config values", map[string]interface{}{
			RequestPermissionsKey:  opts.RequestPermissionsForPushNotifications,
			EnableInAppMessagesKey: opts.EnableInAppMessages,
		}),
		android.MetaDataStep("android store config values", []android.MetaData{
			{Name: RequestPermissionsKey, Value: strconv.FormatBool(opts.RequestPermissionsForPushNotifications)},
			{Name: EnableInAppMessagesKey, Value: strconv.FormatBool(opts.EnableInAppMessages)},
		}),
	}
}

// APIKeySteps store the API key on both platforms, or nothing when the key
// is empty.
func APIKeySteps(apiKey string) []pipeline.Step {
	if apiKey == "" {
		return nil
	}
	return []pipeline.Step{
		ios.InfoPlistStep("ios api key", map[string]interface{}{APIKeyKey: apiKey}),
		android.MetaDataStep("android api key", []android.MetaData{{Name: APIKeyKey, Value: apiKey}}),
	}
}

// Steps is the full pass for opts.
func Steps(opts Options) []pipeline.Step {
	var steps []pipeline.Step
	steps = append(steps, StoreConfigValueSteps(opts)...)
	steps = append(steps, APIKeySteps(opts.APIKey)...)
	if opts.AutoConfigurePushNotifications {
		steps = append(steps, ios.PushNotificationSteps(opts.AppEnvironment, opts.EnableTimeSensitivePush)...)
		steps = append(steps, android.PushNotificationSteps()...)
	}
	steps = append(steps, android.DeepLinksStep())
	return steps
}
