package pbxproj

import (
	"github.com/soapywu/pushkit/pbxparser"
)

// BuildConfigurations lists every XCBuildConfiguration in file order.
func (p *PbxProject) BuildConfigurations() []BuildConfiguration {
	var configs []BuildConfiguration
	p.pbxXCBuildConfigurationSection.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		if obj, ok := val.(pbxparser.Object); ok {
			configs = append(configs, buildConfigurationFromObject(ObjectID(key), obj))
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
	return configs
}

// ConfigurationsForProduct returns the configurations whose PRODUCT_NAME,
// quoted or not, equals productName.
func (p *PbxProject) ConfigurationsForProduct(productName string) []BuildConfiguration {
	var configs []BuildConfiguration
	for _, config := range p.BuildConfigurations() {
		if config.Product == unquoted(productName) {
			configs = append(configs, config)
		}
	}
	return configs
}

// ConfigurationsForTarget follows the target's buildConfigurationList.
func (p *PbxProject) ConfigurationsForTarget(targetName string) []BuildConfiguration {
	target, ok := p.TargetByName(targetName)
	if !ok {
		return nil
	}
	return p.configurationsInList(target.ConfigurationList)
}

func (p *PbxProject) configurationsInList(list ObjectID) []BuildConfiguration {
	configList := p.pbxXCConfigurationListSection.GetObject(string(list))
	if configList.IsNil() {
		return nil
	}
	var configs []BuildConfiguration
	for _, id := range listValues(configList, "buildConfigurations") {
		obj := p.pbxXCBuildConfigurationSection.GetObject(string(id))
		if obj.IsNil() {
			continue
		}
		configs = append(configs, buildConfigurationFromObject(id, obj))
	}
	return configs
}

func buildConfigurationFromObject(id ObjectID, obj pbxparser.Object) BuildConfiguration {
	settings := obj.GetObject("buildSettings")
	return BuildConfiguration{
		ID:       id,
		Name:     unquoted(obj.GetString("name")),
		Product:  unquoted(newBuildSettingsFrom(settings).Get("PRODUCT_NAME")),
		Settings: newBuildSettingsFrom(settings),
	}
}

// UpdateBuildProperty sets prop on every configuration named build, or on
// all of them when build is empty. A non-empty targetName restricts it to
// that target's configurations.
func (p *PbxProject) UpdateBuildProperty(prop, value, build, targetName string) {
	configs := p.BuildConfigurations()
	if targetName != "" {
		configs = p.ConfigurationsForTarget(targetName)
	}
	for _, config := range configs {
		if build == "" || config.Name == build {
			config.Settings.Set(prop, value)
		}
	}
}

// GetBuildProperty returns the value of prop in the first matching
// configuration. List settings come back element by element.
func (p *PbxProject) GetBuildProperty(prop, build, targetName string) []string {
	configs := p.BuildConfigurations()
	if targetName != "" {
		configs = p.ConfigurationsForTarget(targetName)
	}
	for _, config := range configs {
		if build != "" && config.Name != build {
			continue
		}
		raw, ok := config.Settings.Raw(prop)
		if !ok {
			continue
		}
		return interfaceToStringSlice(raw)
	}
	return nil
}
