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
	"fmt"
	"os"
	"strings"

	"github.com/soapywu/pushkit/pbxparser"
)

const (
	INDENT = "\t"
)

// PbxWriter serializes a parsed project back to the format Xcode writes:
// objects grouped in "Begin/End <isa> section" blocks, PBXBuildFile and
// PBXFileReference entries on a single line.
type PbxWriter struct {
	stringWriter *strings.Builder
	contents     pbxparser.Object
	indentLevel  int
}

func NewPbxWriter(project *PbxProject) *PbxWriter {
	return &PbxWriter{
		contents:     project.Contents(),
		stringWriter: &strings.Builder{},
	}
}

func indent(x int) string {
	return strings.Repeat(INDENT, x)
}

func getComment(key string, parent pbxparser.Object) string {
	return parent.GetString(toCommentKey(key))
}

func (w *PbxWriter) writeString(str string) {
	_, _ = w.stringWriter.WriteString(str)
}

func (w *PbxWriter) write(format string, args ...interface{}) {
	w.writeString(indent(w.indentLevel) + fmt.Sprintf(format, args...))
}

func (w *PbxWriter) writeNoIndent(format string, args ...interface{}) {
	w.writeString(fmt.Sprintf(format, args...))
}

// String renders the whole project.
func (w *PbxWriter) String() string {
	w.writeHeadComment()
	w.writeProject()
	return w.stringWriter.String()
}

func (w *PbxWriter) Write(filePath string) error {
	return os.WriteFile(filePath, []byte(w.String()), 0644)
}

func (w *PbxWriter) writeHeadComment() {
	comment := w.contents.GetString(pbxparser.HeadCommentKey)
	if comment != "" {
		w.writeNoIndent("// %s\n", comment)
	}
}

func (w *PbxWriter) writeProject() {
	proj := w.contents.GetObject(pbxparser.ProjectKey)

	w.write("{\n")
	w.indentLevel++
	w.writeObject(proj, true)
	w.indentLevel--
	w.write("}\n")
}

func (w *PbxWriter) writeObject(obj pbxparser.Object, root bool) {
	obj.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		cmt := getComment(key, obj)
		switch {
		case isArray(val):
			w.writeArray(toArray(val), key)
		case isObject(val):
			if cmt != "" {
				w.write("%s /* %s */ = {\n", key, cmt)
			} else {
				w.write("%s = {\n", key)
			}
			w.indentLevel++
			if root && key == pbxparser.ObjectsKey {
				w.writeObjectsSections(toObject(val))
			} else {
				w.writeObject(toObject(val), false)
			}
			w.indentLevel--
			w.write("};\n")
		default:
			str, ok := scalarString(val)
			if !ok {
				return pbxparser.IterateActionContinue
			}
			if cmt != "" {
				w.write("%s = %s /* %s */;\n", key, str, cmt)
			} else {
				w.write("%s = %s;\n", key, str)
			}
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeObjectsSections(obj pbxparser.Object) {
	obj.Foreach(func(key string, val interface{}) pbxparser.IterateActionType {
		if !isObject(val) || toObject(val).IsEmpty() {
			return pbxparser.IterateActionContinue
		}
		w.writeNoIndent("\n")
		w.writeSectionComment(key, true)
		w.writeSection(toObject(val))
		w.writeSectionComment(key, false)
		return pbxparser.IterateActionContinue
	})
}

// commentValue recognizes the {value, comment} shape of list items.
func commentValue(obj pbxparser.Object) (CommentValue, bool) {
	if obj.Size() > 2 || !obj.Has("value") {
		return CommentValue{}, false
	}
	for _, key := range obj.Keys() {
		if key != "value" && key != "comment" {
			return CommentValue{}, false
		}
	}
	return CommentValue{Value: obj.GetString("value"), Comment: obj.GetString("comment")}, true
}

func (w *PbxWriter) writeArray(arr []interface{}, name string) {
	w.write("%s = (\n", name)
	w.indentLevel++

	for _, item := range arr {
		if isObject(item) {
			obj := toObject(item)
			if cv, ok := commentValue(obj); ok {
				if cv.Comment != "" {
					w.write("%s /* %s */,\n", cv.Value, cv.Comment)
				} else {
					w.write("%s,\n", cv.Value)
				}
				continue
			}
			w.write("{\n")
			w.indentLevel++
			w.writeObject(obj, false)
			w.indentLevel--
			w.write("},\n")
		} else if str, ok := scalarString(item); ok {
			w.write("%s,\n", str)
		}
	}
	w.indentLevel--
	w.write(");\n")
}

func (w *PbxWriter) writeSectionComment(name string, begin bool) {
	if begin {
		w.writeNoIndent("/* Begin %s section */\n", name)
	} else {
		w.writeNoIndent("/* End %s section */\n", name)
	}
}

func (w *PbxWriter) writeSection(section pbxparser.Object) {
	section.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		cmt := getComment(key, section)
		if !isObject(val) {
			return pbxparser.IterateActionContinue
		}
		obj := toObject(val)
		isa := obj.GetString("isa")
		if isa == "PBXBuildFile" || isa == "PBXFileReference" {
			w.writeInlineObject(key, cmt, obj)
			return pbxparser.IterateActionContinue
		}
		if cmt != "" {
			w.write("%s /* %s */ = {\n", key, cmt)
		} else {
			w.write("%s = {\n", key)
		}
		w.indentLevel++
		w.writeObject(obj, false)
		w.indentLevel--
		w.write("};\n")
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)
}

func (w *PbxWriter) writeInlineObjectHelp(output *strings.Builder, name string, desc string, ref pbxparser.Object) {
	if desc != "" {
		fmt.Fprintf(output, "%s /* %s */ = {", name, desc)
	} else {
		fmt.Fprintf(output, "%s = {", name)
	}

	ref.ForeachWithFilter(func(key string, val interface{}) pbxparser.IterateActionType {
		cmt := getComment(key, ref)
		switch {
		case isArray(val):
			fmt.Fprintf(output, "%s = (", key)
			for _, item := range interfaceToStringSlice(val) {
				fmt.Fprintf(output, "%s, ", item)
			}
			output.WriteString("); ")
		case isObject(val):
			w.writeInlineObjectHelp(output, key, cmt, toObject(val))
			output.WriteString(" ")
		default:
			value, ok := scalarString(val)
			if !ok {
				return pbxparser.IterateActionContinue
			}
			if cmt != "" {
				fmt.Fprintf(output, "%s = %s /* %s */; ", key, value, cmt)
			} else {
				fmt.Fprintf(output, "%s = %s; ", key, value)
			}
		}
		return pbxparser.IterateActionContinue
	}, nonCommentsFilter)

	output.WriteString("};")
}

func (w *PbxWriter) writeInlineObject(name string, desc string, ref pbxparser.Object) {
	var output strings.Builder
	w.writeInlineObjectHelp(&output, name, desc, ref)
	w.write("%s\n", output.String())
}
