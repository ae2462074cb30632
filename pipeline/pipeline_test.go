package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/soapywu/pushkit/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordStep(name string, platform Platform, trace *[]string) Step {
	return NewStep(name, platform, func(config *Config) (*Config, error) {
		*trace = append(*trace, name)
		return config, nil
	})
}

func TestRunThreadsStepsInOrder(t *testing.T) {
	var trace []string
	config := NewConfig(t.TempDir())

	out, err := Run(config, []Step{
		recordStep("capabilities", PlatformIOS, &trace),
		recordStep("background modes", PlatformIOS, &trace),
		recordStep("permissions", PlatformAndroid, &trace),
	})
	require.NoError(t, err)
	assert.Same(t, config, out)
	assert.Equal(t, []string{"capabilities", "background modes", "permissions"}, trace)
}

func TestRunUsesReturnedConfig(t *testing.T) {
	replacement := NewConfig("other")
	var seen string

	_, err := Run(NewConfig("first"), []Step{
		NewStep("swap", PlatformAll, func(*Config) (*Config, error) { return replacement, nil }),
		NewStep("read", PlatformAll, func(c *Config) (*Config, error) {
			seen = c.ProjectRoot
			return c, nil
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, "other", seen)
}

func TestRunStopsAtFirstError(t *testing.T) {
	var trace []string
	boom := errors.New("boom")

	_, err := Run(NewConfig(""), []Step{
		recordStep("one", PlatformAll, &trace),
		NewStep("two", PlatformAll, func(*Config) (*Config, error) { return nil, boom }),
		recordStep("three", PlatformAll, &trace),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.EqualError(t, err, "two: boom")
	assert.Equal(t, []string{"one"}, trace)
}

func TestFilter(t *testing.T) {
	var trace []string
	steps := []Step{
		recordStep("store", PlatformAll, &trace),
		recordStep("ios", PlatformIOS, &trace),
		recordStep("android", PlatformAndroid, &trace),
	}

	names := func(steps []Step) []string {
		var out []string
		for _, s := range steps {
			out = append(out, s.Name)
		}
		return out
	}
	assert.Equal(t, []string{"store", "ios"}, names(Filter(steps, PlatformIOS)))
	assert.Equal(t, []string{"store", "android"}, names(Filter(steps, PlatformAndroid)))
	assert.Len(t, Filter(steps, PlatformAll), 3)
}

func TestWarnings(t *testing.T) {
	buf := &bytes.Buffer{}
	config := NewConfig("")
	config.Logger = logger.NewLogger(buf, logger.InfoLevel)

	config.AddWarningAndroid("@iterable/expo-plugin", "not groovy")
	config.AddWarningIOS("@iterable/expo-plugin", "no anonymous group")

	require.Equal(t, 2, config.Warnings.Len())
	android := config.Warnings.ForPlatform(PlatformAndroid)
	require.Len(t, android, 1)
	assert.Equal(t, "@iterable/expo-plugin: not groovy", android[0].String())
	assert.Contains(t, buf.String(), "no anonymous group")
}

func TestZeroConfigIsUsable(t *testing.T) {
	config := &Config{}
	config.AddWarningIOS("tag", "text")
	assert.Equal(t, 1, config.Warnings.Len())
	assert.False(t, config.IOS.Loaded())
	assert.False(t, config.Android.Loaded())
}
