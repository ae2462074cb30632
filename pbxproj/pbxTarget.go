package pbxproj

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/soapywu/pushkit/pbxparser"
)

func producttypeForTargettype(targetType TargetType) string {
	switch targetType {
	case TargetTypeApplication:
		return "com.apple.product-type.application"
	case TargetTypeAppExtension:
		return "com.apple.product-type.app-extension"
	case TargetTypeBundle:
		return "com.apple.product-type.bundle"
	case TargetTypeCommandLineTool:
		return "com.apple.product-type.tool"
	case TargetTypeDynamicLibrary:
		return "com.apple.product-type.library.dynamic"
	case TargetTypeFramework:
		return "com.apple.product-type.framework"
	case TargetTypeStaticLibrary:
		return "com.apple.product-type.library.static"
	case TargetTypeUnitTestBundle:
		return "com.apple.product-type.bundle.unit-test"
	default:
		return ""
	}
}

func filetypeForProducttype(productType string) string {
	switch productType {
	case "com.apple.product-type.application":
		return "wrapper.application"
	case "com.apple.product-type.app-extension":
		return "wrapper.app-extension"
	case "com.apple.product-type.bundle":
		return "wrapper.plug-in"
	case "com.apple.product-type.tool", "com.apple.product-type.library.dynamic":
		return "compiled.mach-o.dylib"
	case "com.apple.product-type.framework":
		return "wrapper.framework"
	case "com.apple.product-type.library.static":
		return "archive.ar"
	case "com.apple.product-type.bundle.unit-test":
		return "wrapper.cfbundle"
	default:
		return ""
	}
}

// AddTarget creates a native target with Debug and Release configurations
// and a product reference. An app extension is also embedded into the first
// target of the project, which gains a dependency on it.
func (p *PbxProject) AddTarget(name string, targetType TargetType, subfolder, bundleId string) (Target, error) {
	targetName := strings.TrimSpace(name)
	if targetName == "" {
		return Target{}, errors.New("target name missing")
	}
	if targetType == "" {
		return Target{}, errors.New("target type missing")
	}
	productType := producttypeForTargettype(targetType)
	if productType == "" {
		return Target{}, fmt.Errorf("target type invalid: %s", targetType)
	}

	targetUuid := p.generateUuid()
	targetSubfolder := subfolder
	if targetSubfolder == "" {
		targetSubfolder = targetName
	}
	infoPlist := quoteIfNeeded(path.Join(targetSubfolder, targetSubfolder+"-Info.plist"))

	// Build Configuration: Create
	buildConfigurationsList := []pbxparser.Object{
		pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("isa", "XCBuildConfiguration"),
			pbxparser.NewObjectItem("buildSettings", pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
				pbxparser.NewObjectItem("GCC_PREPROCESSOR_DEFINITIONS", []interface{}{`"DEBUG=1"`, `"$(inherited)"`}),
				pbxparser.NewObjectItem("INFOPLIST_FILE", infoPlist),
				pbxparser.NewObjectItem("LD_RUNPATH_SEARCH_PATHS", `"$(inherited) @executable_path/Frameworks @executable_path/../../Frameworks"`),
				pbxparser.NewObjectItem("PRODUCT_NAME", quoted(targetName)),
				pbxparser.NewObjectItem("SKIP_INSTALL", "YES"),
			})),
			pbxparser.NewObjectItem("name", "Debug"),
		}),
		pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("isa", "XCBuildConfiguration"),
			pbxparser.NewObjectItem("buildSettings", pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
				pbxparser.NewObjectItem("INFOPLIST_FILE", infoPlist),
				pbxparser.NewObjectItem("LD_RUNPATH_SEARCH_PATHS", `"$(inherited) @executable_path/Frameworks @executable_path/../../Frameworks"`),
				pbxparser.NewObjectItem("PRODUCT_NAME", quoted(targetName)),
				pbxparser.NewObjectItem("SKIP_INSTALL", "YES"),
			})),
			pbxparser.NewObjectItem("name", "Release"),
		}),
	}

	if bundleId != "" {
		for _, buildConfiguration := range buildConfigurationsList {
			buildConfiguration.GetObject("buildSettings").Set("PRODUCT_BUNDLE_IDENTIFIER", quoted(bundleId))
		}
	}

	buildConfigurations := p.addXCConfigurationList(buildConfigurationsList, "Release", `Build configuration list for PBXNativeTarget "`+targetName+`"`)

	// Product: Create
	productFile := p.addProductFile(targetName, PbxFileOptions{
		Group:            "Copy Files",
		Target:           targetUuid,
		ExplicitFileType: filetypeForProducttype(productType),
	})

	target := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("isa", "PBXNativeTarget"),
		pbxparser.NewObjectItem("buildConfigurationList", buildConfigurations.UUID),
		pbxparser.NewObjectItem(toCommentKey("buildConfigurationList"), `Build configuration list for PBXNativeTarget "`+targetName+`"`),
		pbxparser.NewObjectItem("buildPhases", []interface{}{}),
		pbxparser.NewObjectItem("buildRules", []interface{}{}),
		pbxparser.NewObjectItem("dependencies", []interface{}{}),
		pbxparser.NewObjectItem("name", quoted(targetName)),
		pbxparser.NewObjectItem("productName", quoted(targetName)),
		pbxparser.NewObjectItem("productReference", productFile.FileRef),
		pbxparser.NewObjectItem(toCommentKey("productReference"), productFile.Basename),
		pbxparser.NewObjectItem("productType", quoted(productType)),
	})
	p.addToPbxNativeTargetSection(targetUuid, target)

	firstTarget := p.getFirstTarget()
	if targetType == TargetTypeAppExtension && firstTarget.UUID != "" {
		productFile.Uuid = p.generateUuid()
		productFile.Settings = pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("ATTRIBUTES", []interface{}{"RemoveHeadersOnCopy"}),
		})
		p.addToPbxBuildFileSection(productFile)

		phase, err := p.addBuildPhase(nil, CopyFilesBuildPhase, "Copy Files", ObjectID(firstTarget.UUID), targetType)
		if err != nil {
			return Target{}, err
		}
		addToObjectList(p.getPBXObject(string(CopyFilesBuildPhase)).GetObject(string(phase)), "files", pbxBuildPhaseObj(productFile))
	}

	p.addToPbxProjectSection(targetUuid, target)

	if firstTarget.UUID != "" {
		if err := p.AddTargetDependency(ObjectID(firstTarget.UUID), []ObjectID{ObjectID(targetUuid)}); err != nil {
			return Target{}, err
		}
	}

	created, _ := p.targetByKey(ObjectID(targetUuid))
	return created, nil
}

func (p *PbxProject) addProductFile(targetName string, options PbxFileOptions) *PbxFile {
	pbxfile := newPbxFile(targetName, options)
	pbxfile.IncludeInIndex = 0
	pbxfile.FileRef = p.generateUuid()
	p.addToPbxFileReferenceSection(pbxfile)
	p.addFileToPbxGroup(pbxfile, "Products")
	return pbxfile
}

func (p *PbxProject) addXCConfigurationList(configurationObjectsArray []pbxparser.Object, defaultConfigurationName, comment string) pbxparser.ObjectWithUUID {
	xcConfigurationListUuid := p.generateUuid()
	buildConfigurations := make([]interface{}, 0, len(configurationObjectsArray))

	for _, configuration := range configurationObjectsArray {
		configurationUuid := p.generateUuid()
		p.pbxXCBuildConfigurationSection.Set(configurationUuid, configuration)
		p.pbxXCBuildConfigurationSection.Set(toCommentKey(configurationUuid), configuration.GetString("name"))
		buildConfigurations = append(buildConfigurations, CommentValue{
			Value:   configurationUuid,
			Comment: configuration.GetString("name"),
		}.ToObject())
	}

	xcConfigurationList := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("isa", "XCConfigurationList"),
		pbxparser.NewObjectItem("buildConfigurations", buildConfigurations),
		pbxparser.NewObjectItem("defaultConfigurationIsVisible", 0),
		pbxparser.NewObjectItem("defaultConfigurationName", defaultConfigurationName),
	})
	p.pbxXCConfigurationListSection.Set(xcConfigurationListUuid, xcConfigurationList)
	p.pbxXCConfigurationListSection.Set(toCommentKey(xcConfigurationListUuid), comment)

	return pbxparser.ObjectWithUUID{
		UUID:   xcConfigurationListUuid,
		Object: xcConfigurationList,
	}
}

func (p *PbxProject) addToPbxProjectSection(uuid string, target pbxparser.Object) {
	project := p.getFirstProject()
	addToObjectList(project.Object, "targets", CommentValue{
		Value:   uuid,
		Comment: pbxNativeTargetComment(target),
	}.ToObject())
}

func (p *PbxProject) addToPbxNativeTargetSection(uuid string, target pbxparser.Object) {
	p.pbxNativeTargetSection.Set(uuid, target)
	p.pbxNativeTargetSection.Set(toCommentKey(uuid), pbxNativeTargetComment(target))
}

// AddTargetDependency makes target depend on each of dependencyTargets
// through a PBXTargetDependency and its PBXContainerItemProxy.
func (p *PbxProject) AddTargetDependency(target ObjectID, dependencyTargets []ObjectID) error {
	targetObj := p.pbxNativeTargetSection.GetObject(string(target))
	if targetObj.IsNil() {
		return fmt.Errorf("target %s not found", target)
	}
	for _, dependencyTarget := range dependencyTargets {
		if !p.pbxNativeTargetSection.Has(string(dependencyTarget)) {
			return fmt.Errorf("dependency target %s not found", dependencyTarget)
		}
	}

	p.EnsureObjectSection("PBXTargetDependency")
	p.EnsureObjectSection("PBXContainerItemProxy")

	for _, dependencyTargetUuid := range dependencyTargets {
		dependencyName := p.pbxNativeTargetSection.GetString(toCommentKey(string(dependencyTargetUuid)))
		targetDependencyUuid := p.generateUuid()
		itemProxyUuid := p.generateUuid()
		itemProxy := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("isa", "PBXContainerItemProxy"),
			pbxparser.NewObjectItem("containerPortal", p.topProjectSection.GetString("rootObject")),
			pbxparser.NewObjectItem(toCommentKey("containerPortal"), p.topProjectSection.GetString(toCommentKey("rootObject"))),
			pbxparser.NewObjectItem("proxyType", 1),
			pbxparser.NewObjectItem("remoteGlobalIDString", string(dependencyTargetUuid)),
			pbxparser.NewObjectItem("remoteInfo", quoteIfNeeded(dependencyName)),
		})

		targetDependency := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
			pbxparser.NewObjectItem("isa", "PBXTargetDependency"),
			pbxparser.NewObjectItem("target", string(dependencyTargetUuid)),
			pbxparser.NewObjectItem(toCommentKey("target"), dependencyName),
			pbxparser.NewObjectItem("targetProxy", itemProxyUuid),
			pbxparser.NewObjectItem(toCommentKey("targetProxy"), "PBXContainerItemProxy"),
		})

		p.pbxContainerItemProxySection.Set(itemProxyUuid, itemProxy)
		p.pbxContainerItemProxySection.Set(toCommentKey(itemProxyUuid), "PBXContainerItemProxy")
		p.pbxTargetDependencySection.Set(targetDependencyUuid, targetDependency)
		p.pbxTargetDependencySection.Set(toCommentKey(targetDependencyUuid), "PBXTargetDependency")
		addToObjectList(targetObj, "dependencies", CommentValue{
			Value:   targetDependencyUuid,
			Comment: "PBXTargetDependency",
		}.ToObject())
	}
	return nil
}

// TargetByName finds a native target by its unquoted name.
func (p *PbxProject) TargetByName(name string) (Target, bool) {
	var (
		found  Target
		exists bool
	)
	p.pbxNativeTargetSection.ForeachWithFilter(func(key string, value interface{}) pbxparser.IterateActionType {
		obj, ok := value.(pbxparser.Object)
		if !ok || unquoted(obj.GetString("name")) != name {
			return pbxparser.IterateActionContinue
		}
		found = p.targetFromObject(ObjectID(key), obj)
		exists = true
		return pbxparser.IterateActionBreak
	}, nonCommentsFilter)
	return found, exists
}

// Targets lists every native target in file order.
func (p *PbxProject) Targets() []Target {
	var targets []Target
	p.pbxNativeTargetSection.ForeachWithFilter(func(key string, value interface{}) pbxparser.IterateActionType {
		if obj, ok := value.(pbxparser.Object); ok {
			targets = append(targets, p.targetFromObject(ObjectID(key), obj))
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
	return targets
}

func (p *PbxProject) targetByKey(id ObjectID) (Target, bool) {
	obj := p.pbxNativeTargetSection.GetObject(string(id))
	if obj.IsNil() {
		return Target{}, false
	}
	return p.targetFromObject(id, obj), true
}

func (p *PbxProject) targetFromObject(id ObjectID, obj pbxparser.Object) Target {
	target := Target{
		ID:                id,
		Name:              unquoted(obj.GetString("name")),
		ProductType:       unquoted(obj.GetString("productType")),
		ConfigurationList: ObjectID(obj.GetString("buildConfigurationList")),
		BuildPhases:       listValues(obj, "buildPhases"),
	}
	for _, config := range p.configurationsInList(target.ConfigurationList) {
		if bundleID := config.Settings.Value("PRODUCT_BUNDLE_IDENTIFIER"); bundleID != "" {
			target.BundleID = bundleID
			break
		}
	}
	return target
}
