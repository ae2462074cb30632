package pbxproj

import (
	"fmt"

	"github.com/soapywu/pushkit/pbxparser"
)

var destinationByTargettype = map[TargetType]string{
	TargetTypeApplication:     "wrapper",
	TargetTypeAppExtension:    "plugins",
	TargetTypeBundle:          "wrapper",
	TargetTypeCommandLineTool: "wrapper",
	TargetTypeDynamicLibrary:  "products_directory",
	TargetTypeFramework:       "shared_frameworks",
	TargetTypeStaticLibrary:   "products_directory",
	TargetTypeUnitTestBundle:  "wrapper",
}

var subfolderspecByDestination = map[string]int{
	"absolute_path":      0,
	"executables":        6,
	"frameworks":         10,
	"java_resources":     15,
	"plugins":            13,
	"products_directory": 16,
	"resources":          7,
	"shared_frameworks":  11,
	"shared_support":     12,
	"wrapper":            1,
	"xpc_services":       0,
}

// AddBuildPhase appends a build phase of phaseType to target, the first
// target of the project when target is empty. Each file becomes a new
// PBXBuildFile; its PBXFileReference is reused when one with the same path
// or name exists.
func (p *PbxProject) AddBuildPhase(filePathsArray []string, phaseType BuildPhaseType, comment string, target ObjectID) (ObjectID, error) {
	return p.addBuildPhase(filePathsArray, phaseType, comment, target, "")
}

func (p *PbxProject) addBuildPhase(filePathsArray []string, phaseType BuildPhaseType, comment string, target ObjectID, folderType TargetType) (ObjectID, error) {
	if target == "" {
		target = ObjectID(p.getFirstTarget().UUID)
	}
	targetObj := p.pbxNativeTargetSection.GetObject(string(target))
	if targetObj.IsNil() {
		return "", fmt.Errorf("target %q not found", target)
	}

	buildPhaseUuid := p.generateUuid()
	buildPhase := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("isa", string(phaseType)),
		pbxparser.NewObjectItem("buildActionMask", 2147483647),
	})
	if phaseType == CopyFilesBuildPhase {
		buildPhase.Set("dstPath", `""`)
		buildPhase.Set("dstSubfolderSpec", subfolderspecByDestination[destinationByTargettype[folderType]])
	}
	buildPhase.Set("files", []interface{}{})
	if phaseType == CopyFilesBuildPhase {
		buildPhase.Set("name", quoteIfNeeded(comment))
	}
	buildPhase.Set("runOnlyForDeploymentPostprocessing", 0)

	filePathToReference := p.fileReferencesByPath()
	for _, filePath := range filePathsArray {
		pbxfile := newPbxFile(filePath, PbxFileOptions{Group: comment, Target: string(target)})
		ref, found := filePathToReference[unquoted(pbxfile.Path)]
		if !found {
			ref, found = filePathToReference[unquoted(filePath)]
		}
		if found {
			pbxfile.FileRef = ref.Value
		} else {
			pbxfile.FileRef = p.generateUuid()
			p.addToPbxFileReferenceSection(pbxfile) // PBXFileReference
			filePathToReference[unquoted(pbxfile.Path)] = CommentValue{Value: pbxfile.FileRef, Comment: pbxfile.Basename}
		}
		pbxfile.Uuid = p.generateUuid()
		p.addToPbxBuildFileSection(pbxfile) // PBXBuildFile
		addToObjectList(buildPhase, "files", pbxBuildPhaseObj(pbxfile))
	}

	buildPhaseSection := p.ensureSection(string(phaseType))
	buildPhaseSection.Set(buildPhaseUuid, buildPhase)
	buildPhaseSection.Set(toCommentKey(buildPhaseUuid), comment)

	addToObjectList(targetObj, "buildPhases", CommentValue{
		Value:   buildPhaseUuid,
		Comment: comment,
	}.ToObject())
	return ObjectID(buildPhaseUuid), nil
}

// BuildPhaseFiles returns the build file comments of a phase, such as
// "NotificationService.swift in Sources".
func (p *PbxProject) BuildPhaseFiles(phase ObjectID) []string {
	var files []string
	p.pbxObjectSection.Foreach(func(isa string, value interface{}) pbxparser.IterateActionType {
		section, ok := value.(pbxparser.Object)
		if !ok || !section.Has(string(phase)) {
			return pbxparser.IterateActionContinue
		}
		for _, file := range section.GetObject(string(phase)).GetArray("files") {
			if obj, ok := file.(pbxparser.Object); ok {
				files = append(files, obj.GetString("comment"))
			}
		}
		return pbxparser.IterateActionBreak
	})
	return files
}
