package pipeline

import (
	"fmt"
)

// StepFunc transforms the configuration and hands it to the next step.
type StepFunc func(config *Config) (*Config, error)

type Step struct {
	Name     string
	Platform Platform
	Run      StepFunc
}

func NewStep(name string, platform Platform, run StepFunc) Step {
	return Step{Name: name, Platform: platform, Run: run}
}

// Filter keeps the steps of platform plus the ones that span both platforms.
// PlatformAll keeps everything.
func Filter(steps []Step, platform Platform) []Step {
	if platform == PlatformAll || platform == "" {
		return steps
	}
	var out []Step
	for _, step := range steps {
		if step.Platform == platform || step.Platform == PlatformAll {
			out = append(out, step)
		}
	}
	return out
}

// Run threads config through steps in order and stops at the first error,
// which is returned wrapped with the step name. The returned Config is the
// one produced by the last successful step.
func Run(config *Config, steps []Step) (*Config, error) {
	current := config
	for _, step := range steps {
		log := current.Log().ForContext("Step", step.Name)
		log.Debug("Running step {Step}", step.Name)
		next, err := step.Run(current)
		if err != nil {
			log.Error("Step {Step} failed: {Error}", step.Name, err)
			return current, fmt.Errorf("%s: %w", step.Name, err)
		}
		if next != nil {
			current = next
		}
	}
	return current, nil
}
