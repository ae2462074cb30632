/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/

package pbxproj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/soapywu/pushkit/pbxparser"
)

var ErrNoObjects = errors.New("pbxproj: project has no objects table")

type PbxProject struct {
	filePath                       string
	pbxContents                    pbxparser.Object
	topProjectSection              pbxparser.Object
	pbxObjectSection               pbxparser.Object
	pbxGroupSection                pbxparser.Object
	pbxProjectSection              pbxparser.Object
	pbxBuildFileSection            pbxparser.Object
	pbxXCBuildConfigurationSection pbxparser.Object
	pbxFileReferenceSection        pbxparser.Object
	pbxNativeTargetSection         pbxparser.Object
	pbxXCConfigurationListSection  pbxparser.Object
	pbxTargetDependencySection     pbxparser.Object
	pbxContainerItemProxySection   pbxparser.Object
	uuids                          map[string]struct{}
}

func NewPbxProject(filename string) *PbxProject {
	return &PbxProject{
		filePath: filename,
		uuids:    make(map[string]struct{}),
	}
}

func (p *PbxProject) FilePath() string {
	return p.filePath
}

func (p *PbxProject) Contents() pbxparser.Object {
	return p.pbxContents
}

func (p *PbxProject) Parse() error {
	file, err := os.Open(p.filePath)
	if err != nil {
		return err
	}
	defer file.Close()
	contents, err := pbxparser.ParseReader(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", p.filePath, err)
	}
	return p.load(contents)
}

func (p *PbxProject) ParseBytes(data []byte) error {
	contents, err := pbxparser.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", p.filePath, err)
	}
	return p.load(contents)
}

func (p *PbxProject) load(contents pbxparser.Object) error {
	p.pbxContents = contents
	if err := p.initSections(); err != nil {
		return err
	}
	p.buildExistUuids()
	return nil
}

func (p *PbxProject) Dump(writer io.Writer) error {
	buffer := bytes.NewBuffer([]byte{})
	jsonEncoder := json.NewEncoder(buffer)
	jsonEncoder.SetEscapeHTML(false)
	jsonEncoder.SetIndent("", "  ")
	if err := jsonEncoder.Encode(p.Contents()); err != nil {
		return err
	}
	_, err := writer.Write(buffer.Bytes())
	return err
}

func (p *PbxProject) initSections() error {
	p.topProjectSection = p.pbxContents.GetObject(pbxparser.ProjectKey)
	p.pbxObjectSection = p.topProjectSection.GetObject(pbxparser.ObjectsKey)
	if p.pbxObjectSection.IsNil() {
		return ErrNoObjects
	}
	p.pbxGroupSection = p.ensureSection("PBXGroup")
	p.pbxProjectSection = p.ensureSection("PBXProject")
	p.pbxBuildFileSection = p.ensureSection("PBXBuildFile")
	p.pbxXCBuildConfigurationSection = p.ensureSection("XCBuildConfiguration")
	p.pbxFileReferenceSection = p.ensureSection("PBXFileReference")
	p.pbxNativeTargetSection = p.ensureSection("PBXNativeTarget")
	p.pbxXCConfigurationListSection = p.ensureSection("XCConfigurationList")
	p.pbxTargetDependencySection = p.pbxObjectSection.GetObject("PBXTargetDependency")
	p.pbxContainerItemProxySection = p.pbxObjectSection.GetObject("PBXContainerItemProxy")
	return nil
}

// EnsureObjectSection creates an empty isa section in the objects table when
// the project has none. Empty sections are not written.
func (p *PbxProject) EnsureObjectSection(isa string) {
	p.ensureSection(isa)
}

func (p *PbxProject) ensureSection(isa string) pbxparser.Object {
	section := p.pbxObjectSection.GetObject(isa)
	if section.IsNil() {
		section = pbxparser.NewObject()
		p.pbxObjectSection.Set(isa, section)
	}
	switch isa {
	case "PBXTargetDependency":
		p.pbxTargetDependencySection = section
	case "PBXContainerItemProxy":
		p.pbxContainerItemProxySection = section
	}
	return section
}

func (p *PbxProject) buildExistUuids() {
	uuids := make(map[string]struct{})
	p.pbxObjectSection.Foreach(func(_ string, v interface{}) pbxparser.IterateActionType {
		fileSection, ok := v.(pbxparser.Object)
		if !ok {
			return pbxparser.IterateActionContinue
		}
		fileSection.ForeachWithFilter(func(key string, value interface{}) pbxparser.IterateActionType {
			if len(key) == 24 {
				uuids[key] = struct{}{}
			}
			return pbxparser.IterateActionContinue
		}, nonCommentsFilter)
		return pbxparser.IterateActionContinue
	})

	p.uuids = uuids
}

// Bytes renders the project in the on-disk format.
func (p *PbxProject) Bytes() []byte {
	return []byte(NewPbxWriter(p).String())
}

func (p *PbxProject) WriteSync() error {
	return NewPbxWriter(p).Write(p.filePath)
}

func (p *PbxProject) generateUuid() string {
	u, _ := uuid.NewV4()
	newUUID := strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[0:24])

	_, found := p.uuids[newUUID]
	if found {
		return p.generateUuid()
	}
	p.uuids[newUUID] = struct{}{}
	return newUUID
}

func (p *PbxProject) getFirstProject() pbxparser.ObjectWithUUID {
	uuid := ""
	var project pbxparser.Object
	p.pbxProjectSection.ForeachWithFilter(func(key string, value interface{}) pbxparser.IterateActionType {
		uuid = key
		project = toObject(value)
		return pbxparser.IterateActionBreak
	}, nonCommentsFilter)

	return pbxparser.ObjectWithUUID{
		UUID:   uuid,
		Object: project,
	}
}

func (p *PbxProject) getFirstTarget() pbxparser.ObjectWithUUID {
	project := p.getFirstProject()
	targets := listValues(project.Object, "targets")
	if len(targets) == 0 {
		return pbxparser.ObjectWithUUID{}
	}
	firstTargetUuid := string(targets[0])
	return pbxparser.ObjectWithUUID{
		UUID:   firstTargetUuid,
		Object: p.pbxNativeTargetSection.GetObject(firstTargetUuid),
	}
}

func (p *PbxProject) getPBXObject(name string) pbxparser.Object {
	return p.pbxObjectSection.GetObject(name)
}

func (p *PbxProject) addToPbxBuildFileSection(pbxfile *PbxFile) {
	p.pbxBuildFileSection.Set(pbxfile.Uuid, pbxBuildFileObj(pbxfile))
	p.pbxBuildFileSection.Set(toCommentKey(pbxfile.Uuid), pbxBuildFileComment(pbxfile))
}

func (p *PbxProject) addToPbxFileReferenceSection(pbxfile *PbxFile) {
	p.pbxFileReferenceSection.Set(pbxfile.FileRef, newPbxFileReferenceObj(pbxfile))
	p.pbxFileReferenceSection.Set(toCommentKey(pbxfile.FileRef), pbxFileReferenceComment(pbxfile))
}

// fileReferencesByPath indexes PBXFileReference entries by unquoted path and
// by unquoted name.
func (p *PbxProject) fileReferencesByPath() map[string]CommentValue {
	refs := map[string]CommentValue{}
	p.pbxFileReferenceSection.ForeachWithFilter(func(key string, value interface{}) pbxparser.IterateActionType {
		ref, ok := value.(pbxparser.Object)
		if !ok {
			return pbxparser.IterateActionContinue
		}
		comment := p.pbxFileReferenceSection.GetString(toCommentKey(key))
		for _, field := range []string{"path", "name"} {
			v := unquoted(ref.GetString(field))
			if v == "" {
				continue
			}
			if _, exists := refs[v]; !exists {
				refs[v] = CommentValue{Value: key, Comment: comment}
			}
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
	return refs
}

func pbxBuildFileObj(pbxfile *PbxFile) pbxparser.Object {
	obj := pbxparser.NewObject()
	obj.Set("isa", "PBXBuildFile")
	obj.Set("fileRef", pbxfile.FileRef)
	obj.Set(toCommentKey("fileRef"), pbxfile.Basename)
	if !pbxfile.Settings.IsEmpty() {
		obj.Set("settings", pbxfile.Settings)
	}
	return obj
}

func newPbxFileReferenceObj(pbxfile *PbxFile) pbxparser.Object {
	obj := pbxparser.NewObject()
	obj.Set("isa", "PBXFileReference")
	if pbxfile.ExplicitFileType != "" {
		obj.Set("explicitFileType", quoteIfNeeded(pbxfile.ExplicitFileType))
		obj.Set("includeInIndex", pbxfile.IncludeInIndex)
	}
	if pbxfile.FileEncoding != 0 {
		obj.Set("fileEncoding", pbxfile.FileEncoding)
	}
	if pbxfile.LastKnownFileType != "" {
		obj.Set("lastKnownFileType", quoteIfNeeded(pbxfile.LastKnownFileType))
	}
	if pbxfile.needsName() {
		obj.Set("name", quoteIfNeeded(pbxfile.Basename))
	}
	obj.Set("path", quoteIfNeeded(pbxfile.Path))
	obj.Set("sourceTree", pbxfile.SourceTree)
	return obj
}

func pbxBuildPhaseObj(pbxfile *PbxFile) pbxparser.Object {
	return CommentValue{
		Value:   pbxfile.Uuid,
		Comment: longComment(pbxfile),
	}.ToObject()
}

func pbxBuildFileComment(pbxfile *PbxFile) string {
	return longComment(pbxfile)
}

func pbxFileReferenceComment(pbxfile *PbxFile) string {
	return pbxfile.Basename
}

func pbxNativeTargetComment(target pbxparser.Object) string {
	return unquoted(target.GetString("name"))
}

func longComment(pbxfile *PbxFile) string {
	return fmt.Sprintf("%s in %s", pbxfile.Basename, pbxfile.Group)
}
