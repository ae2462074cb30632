package ios

import (
	"fmt"

	"github.com/soapywu/pushkit/pbxproj"
)

// fakeProject records every graph call made by the mutator.
type fakeProject struct {
	calls    []string
	targets  []pbxproj.Target
	groups   []pbxproj.Group
	configs  []pbxproj.BuildConfiguration
	sections map[string]bool
	attached map[pbxproj.ObjectID][]pbxproj.ObjectID
	phases   map[pbxproj.BuildPhaseType][]string
}

func newFakeProject() *fakeProject {
	return &fakeProject{
		sections: map[string]bool{},
		attached: map[pbxproj.ObjectID][]pbxproj.ObjectID{},
		phases:   map[pbxproj.BuildPhaseType][]string{},
	}
}

func (f *fakeProject) addConfiguration(settings map[string]string) {
	bs := pbxproj.NewBuildSettings()
	for key, value := range settings {
		bs.Set(key, value)
	}
	f.configs = append(f.configs, pbxproj.BuildConfiguration{
		ID:       pbxproj.ObjectID(fmt.Sprintf("CONFIG%d", len(f.configs))),
		Name:     "Debug",
		Product:  bs.Value("PRODUCT_NAME"),
		Settings: bs,
	})
}

func (f *fakeProject) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeProject) mutations() []string {
	var out []string
	for _, call := range f.calls {
		switch call {
		case "AddTarget", "AddPbxGroup", "AddToPbxGroup", "AddBuildPhase", "EnsureObjectSection":
			out = append(out, call)
		}
	}
	return out
}

func (f *fakeProject) TargetByName(name string) (pbxproj.Target, bool) {
	f.record("TargetByName")
	for _, target := range f.targets {
		if target.Name == name {
			return target, true
		}
	}
	return pbxproj.Target{}, false
}

func (f *fakeProject) EnsureObjectSection(isa string) {
	f.record("EnsureObjectSection")
	f.sections[isa] = true
}

func (f *fakeProject) BuildConfigurations() []pbxproj.BuildConfiguration {
	f.record("BuildConfigurations")
	return f.configs
}

func (f *fakeProject) GroupByName(name string) (pbxproj.Group, bool) {
	f.record("GroupByName")
	for _, group := range f.groups {
		if group.DisplayName() == name {
			return group, true
		}
	}
	return pbxproj.Group{}, false
}

func (f *fakeProject) Groups() []pbxproj.Group {
	f.record("Groups")
	return f.groups
}

func (f *fakeProject) AddTarget(name string, targetType pbxproj.TargetType, subfolder, bundleID string) (pbxproj.Target, error) {
	f.record("AddTarget")
	target := pbxproj.Target{ID: "TARGET", Name: name, ProductType: string(targetType), BundleID: bundleID}
	f.targets = append(f.targets, target)
	return target, nil
}

func (f *fakeProject) AddPbxGroup(files []string, name, path, sourceTree string) pbxproj.Group {
	f.record("AddPbxGroup")
	group := pbxproj.Group{ID: "NEWGROUP", Name: name, Path: path}
	for i := range files {
		group.Children = append(group.Children, pbxproj.ObjectID(fmt.Sprintf("FILE%d", i)))
	}
	f.groups = append(f.groups, group)
	return group
}

func (f *fakeProject) AddToPbxGroup(child pbxproj.Group, parent pbxproj.ObjectID) error {
	f.record("AddToPbxGroup")
	f.attached[parent] = append(f.attached[parent], child.ID)
	return nil
}

func (f *fakeProject) ConfigurationsForProduct(productName string) []pbxproj.BuildConfiguration {
	f.record("ConfigurationsForProduct")
	var out []pbxproj.BuildConfiguration
	for _, config := range f.configs {
		if config.Settings.Value("PRODUCT_NAME") == productName {
			out = append(out, config)
		}
	}
	return out
}

func (f *fakeProject) AddBuildPhase(files []string, phaseType pbxproj.BuildPhaseType, comment string, target pbxproj.ObjectID) (pbxproj.ObjectID, error) {
	f.record("AddBuildPhase")
	f.phases[phaseType] = append(f.phases[phaseType], files...)
	return pbxproj.ObjectID("PHASE" + comment), nil
}
