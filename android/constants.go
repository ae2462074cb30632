package android

const (
	PostNotificationsPermission = "android.permission.POST_NOTIFICATIONS"

	GoogleServicesClasspath = "com.google.gms:google-services"
	GoogleServicesVersion   = "4.3.10"
	GoogleServicesPlugin    = "com.google.gms.google-services"

	FirebaseMessagingClasspath = "com.google.firebase:firebase-messaging"
	FirebaseBOMClasspath       = "com.google.firebase:firebase-bom"
	FirebaseBOMVersion         = "33.1.0"

	// GoogleServicesDestination is relative to the android project root.
	GoogleServicesDestination = "app/google-services.json"

	SingleTaskLaunchMode = "singleTask"

	pluginTag = "@iterable/expo-plugin"
)
