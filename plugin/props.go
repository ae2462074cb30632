// Package plugin turns the user's plugin options into the ordered list of
// mutation steps for a pass.
package plugin

import (
	"fmt"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Props are the plugin options as written in the app config. Nil fields
// take their default in WithDefaults.
type Props struct {
	APIKey                                 string `yaml:"apiKey" json:"apiKey"`
	AppEnvironment                         string `yaml:"appEnvironment" json:"appEnvironment"`
	AutoConfigurePushNotifications         *bool  `yaml:"autoConfigurePushNotifications" json:"autoConfigurePushNotifications"`
	EnableTimeSensitivePush                *bool  `yaml:"enableTimeSensitivePush" json:"enableTimeSensitivePush"`
	RequestPermissionsForPushNotifications *bool  `yaml:"requestPermissionsForPushNotifications" json:"requestPermissionsForPushNotifications"`
	EnableInAppMessages                    *bool  `yaml:"enableInAppMessages" json:"enableInAppMessages"`
}

// Options are Props with every default applied.
type Options struct {
	APIKey                                 string
	AppEnvironment                         string
	AutoConfigurePushNotifications         bool
	EnableTimeSensitivePush                bool
	RequestPermissionsForPushNotifications bool
	EnableInAppMessages                    bool
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func (p Props) WithDefaults() Options {
	env := p.AppEnvironment
	if env == "" {
		env = EnvironmentDevelopment
	}
	return Options{
		APIKey:                                 p.APIKey,
		AppEnvironment:                         env,
		AutoConfigurePushNotifications:         boolOr(p.AutoConfigurePushNotifications, true),
		EnableTimeSensitivePush:                boolOr(p.EnableTimeSensitivePush, true),
		RequestPermissionsForPushNotifications: boolOr(p.RequestPermissionsForPushNotifications, false),
		EnableInAppMessages:                    boolOr(p.EnableInAppMessages, true),
	}
}

// Validate rejects an appEnvironment that is neither development nor
// production. Empty means development.
func (p Props) Validate() error {
	switch p.AppEnvironment {
	case "", EnvironmentDevelopment, EnvironmentProduction:
		return nil
	default:
		return fmt.Errorf("invalid appEnvironment %q, expected %q or %q", p.AppEnvironment, EnvironmentDevelopment, EnvironmentProduction)
	}
}

func Bool(v bool) *bool {
	return &v
}
