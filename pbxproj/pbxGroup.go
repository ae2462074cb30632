package pbxproj

import (
	"fmt"

	"github.com/soapywu/pushkit/pbxparser"
)

// AddPbxGroup creates a PBXGroup holding the given files. Files that already
// have a PBXFileReference with the same path are reused; the others get a
// new reference. No build files are created here, see AddBuildPhase.
func (p *PbxProject) AddPbxGroup(filePathsArray []string, name, path, sourceTree string) Group {
	pbxGroupUuid := p.generateUuid()
	pbxGroup := pbxparser.NewObjectWithData([]pbxparser.ObjectItem{
		pbxparser.NewObjectItem("isa", "PBXGroup"),
		pbxparser.NewObjectItem("children", []interface{}{}),
	})
	if name != "" {
		pbxGroup.Set("name", quoteIfNeeded(name))
	}
	if path != "" {
		pbxGroup.Set("path", quoteIfNeeded(path))
	}
	if sourceTree == "" {
		sourceTree = DEFAULT_SOURCETREE
	}
	pbxGroup.Set("sourceTree", sourceTree)

	filePathToReference := p.fileReferencesByPath()
	for _, filePath := range filePathsArray {
		if commentValue, found := filePathToReference[unquoted(filePath)]; found {
			addToObjectList(pbxGroup, "children", commentValue.ToObject())
			continue
		}

		pbxfile := newPbxFile(filePath, PbxFileOptions{})
		pbxfile.FileRef = p.generateUuid()
		p.addToPbxFileReferenceSection(pbxfile) // PBXFileReference
		addToObjectList(pbxGroup, "children", CommentValue{
			Value:   pbxfile.FileRef,
			Comment: pbxfile.Basename,
		}.ToObject())
	}

	comment := name
	if comment == "" {
		comment = path
	}
	p.pbxGroupSection.Set(pbxGroupUuid, pbxGroup)
	p.pbxGroupSection.Set(toCommentKey(pbxGroupUuid), unquoted(comment))

	group, _ := p.groupByKey(ObjectID(pbxGroupUuid))
	return group
}

// AddToPbxGroup appends child to the children of the group parent. Adding a
// child twice is a no-op.
func (p *PbxProject) AddToPbxGroup(child Group, parent ObjectID) error {
	group := p.pbxGroupSection.GetObject(string(parent))
	if group.IsNil() {
		return fmt.Errorf("group %s not found", parent)
	}
	addToObjectListOnlyNotExist(group, "children", CommentValue{
		Value:   string(child.ID),
		Comment: child.DisplayName(),
	}.ToObject(), sameListValue)
	return nil
}

func (p *PbxProject) addFileToPbxGroup(pbxfile *PbxFile, groupName string) {
	group := p.pbxGroupByName(groupName)
	if group.IsNil() {
		return
	}
	addToObjectList(group, "children", CommentValue{
		Value:   pbxfile.FileRef,
		Comment: pbxfile.Basename,
	}.ToObject())
}

// GroupByName finds a group by its name, or by its path for groups that
// have no name.
func (p *PbxProject) GroupByName(name string) (Group, bool) {
	for _, group := range p.Groups() {
		if group.DisplayName() == name {
			return group, true
		}
	}
	return Group{}, false
}

func (p *PbxProject) pbxGroupByName(name string) pbxparser.Object {
	group, ok := p.GroupByName(name)
	if !ok {
		return pbxparser.Object{}
	}
	return p.pbxGroupSection.GetObject(string(group.ID))
}

// Groups lists every PBXGroup in file order.
func (p *PbxProject) Groups() []Group {
	mainGroup := p.getFirstProject().Object.GetString("mainGroup")
	var groups []Group
	p.pbxGroupSection.ForeachWithFilter(func(key string, value interface{}) pbxparser.IterateActionType {
		if obj, ok := value.(pbxparser.Object); ok {
			groups = append(groups, groupFromObject(ObjectID(key), obj, key == mainGroup))
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
	return groups
}

func (p *PbxProject) groupByKey(id ObjectID) (Group, bool) {
	obj := p.pbxGroupSection.GetObject(string(id))
	if obj.IsNil() {
		return Group{}, false
	}
	mainGroup := p.getFirstProject().Object.GetString("mainGroup")
	return groupFromObject(id, obj, string(id) == mainGroup), true
}

func groupFromObject(id ObjectID, obj pbxparser.Object, main bool) Group {
	return Group{
		ID:       id,
		Name:     unquoted(obj.GetString("name")),
		Path:     unquoted(obj.GetString("path")),
		Children: listValues(obj, "children"),
		Main:     main,
	}
}
