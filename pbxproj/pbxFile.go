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
	"path"
	"strings"

	"github.com/soapywu/pushkit/pbxparser"
)

const (
	DEFAULT_SOURCETREE         = "\"<group>\""
	DEFAULT_PRODUCT_SOURCETREE = "BUILT_PRODUCTS_DIR"
	DEFAULT_GROUP              = "Resources"
	DEFAULT_FILETYPE           = "unknown"
	DEFAULT_ENCODING_VALUE     = 4
)

var FILETYPE_BY_EXTENSION = map[string]string{
	"a":            "archive.ar",
	"app":          "wrapper.application",
	"appex":        "wrapper.app-extension",
	"bundle":       "wrapper.plug-in",
	"dylib":        "compiled.mach-o.dylib",
	"entitlements": "text.plist.entitlements",
	"framework":    "wrapper.framework",
	"h":            "sourcecode.c.h",
	"json":         "text.json",
	"m":            "sourcecode.c.objc",
	"plist":        "text.plist.xml",
	"sh":           "text.script.sh",
	"strings":      "text.plist.strings",
	"swift":        "sourcecode.swift",
	"tbd":          "sourcecode.text-based-dylib-definition",
	"xcassets":     "folder.assetcatalog",
	"xcconfig":     "text.xcconfig",
	"xcprivacy":    "text.xml",
	"xib":          "file.xib",
}

var EXTENSION_BY_FILETYPE = map[string]string{
	"archive.ar":              "a",
	"wrapper.application":     "app",
	"wrapper.app-extension":   "appex",
	"wrapper.plug-in":         "bundle",
	"compiled.mach-o.dylib":   "dylib",
	"wrapper.framework":       "framework",
	"text.plist.entitlements": "entitlements",
	"sourcecode.swift":        "swift",
	"text.plist.xml":          "plist",
	"wrapper.cfbundle":        "xctest",
}

var GROUP_BY_FILETYPE = map[string]string{
	"archive.ar":                             "Frameworks",
	"compiled.mach-o.dylib":                  "Frameworks",
	"sourcecode.text-based-dylib-definition": "Frameworks",
	"wrapper.framework":                      "Frameworks",
	"sourcecode.c.h":                         "Resources",
	"sourcecode.c.objc":                      "Sources",
	"sourcecode.swift":                       "Sources",
}

var PATH_BY_FILETYPE = map[string]string{
	"compiled.mach-o.dylib":                  "usr/lib/",
	"sourcecode.text-based-dylib-definition": "usr/lib/",
	"wrapper.framework":                      "System/Library/Frameworks/",
}

var SOURCETREE_BY_FILETYPE = map[string]string{
	"compiled.mach-o.dylib":                  "SDKROOT",
	"sourcecode.text-based-dylib-definition": "SDKROOT",
	"wrapper.framework":                      "SDKROOT",
}

var ENCODING_BY_FILETYPE = map[string]int{
	"sourcecode.c.h":     DEFAULT_ENCODING_VALUE,
	"sourcecode.c.objc":  DEFAULT_ENCODING_VALUE,
	"sourcecode.swift":   DEFAULT_ENCODING_VALUE,
	"text":               DEFAULT_ENCODING_VALUE,
	"text.plist.xml":     DEFAULT_ENCODING_VALUE,
	"text.script.sh":     DEFAULT_ENCODING_VALUE,
	"text.xcconfig":      DEFAULT_ENCODING_VALUE,
	"text.plist.strings": DEFAULT_ENCODING_VALUE,
}

type PbxFileOptions struct {
	LastKnownFileType string
	ExplicitFileType  string
	SourceTree        string
	Target            string
	Group             string
	Attributes        []string
}

// PbxFile describes one file before it is turned into PBXFileReference and
// PBXBuildFile entries.
type PbxFile struct {
	Basename          string
	FileRef           string
	LastKnownFileType string
	Group             string
	Path              string
	FileEncoding      int
	ExplicitFileType  string
	SourceTree        string
	IncludeInIndex    int
	Settings          pbxparser.Object
	Uuid              string
	Target            string
}

func newPbxFile(filePath string, options PbxFileOptions) *PbxFile {
	pbxfile := PbxFile{}
	pbxfile.Basename = path.Base(filePath)
	if options.LastKnownFileType != "" {
		pbxfile.LastKnownFileType = options.LastKnownFileType
	} else {
		pbxfile.LastKnownFileType = detectType(filePath)
	}

	// When referencing products / build output files
	if options.ExplicitFileType != "" {
		pbxfile.ExplicitFileType = options.ExplicitFileType
		pbxfile.Basename = pbxfile.Basename + "." + EXTENSION_BY_FILETYPE[options.ExplicitFileType]
		pbxfile.Path = pbxfile.Basename
		pbxfile.LastKnownFileType = ""
		pbxfile.Group = options.Group
	} else {
		pbxfile.Group = pbxfile.detectGroup(options)
		pbxfile.Path = pbxfile.defaultPath(filePath)
		pbxfile.FileEncoding = ENCODING_BY_FILETYPE[pbxfile.LastKnownFileType]
	}

	if options.SourceTree != "" {
		pbxfile.SourceTree = options.SourceTree
	} else {
		pbxfile.SourceTree = pbxfile.detectSourcetree()
	}
	pbxfile.Target = options.Target

	if len(options.Attributes) > 0 {
		pbxfile.Settings = pbxparser.NewObject()
		pbxfile.Settings.Set("ATTRIBUTES", stringToInterfaceSlice(options.Attributes))
	}
	return &pbxfile
}

func detectType(filePath string) string {
	extension := strings.TrimPrefix(path.Ext(filePath), ".")
	filetype, found := FILETYPE_BY_EXTENSION[unquoted(extension)]
	if !found {
		return DEFAULT_FILETYPE
	}
	return filetype
}

func (pbxfile *PbxFile) detectGroup(options PbxFileOptions) string {
	if options.Group != "" {
		return options.Group
	}
	groupName, ok := GROUP_BY_FILETYPE[pbxfile.LastKnownFileType]
	if !ok {
		groupName = DEFAULT_GROUP
	}
	return groupName
}

func (pbxfile *PbxFile) detectSourcetree() string {
	if pbxfile.ExplicitFileType != "" {
		return DEFAULT_PRODUCT_SOURCETREE
	}
	sourcetree, ok := SOURCETREE_BY_FILETYPE[pbxfile.LastKnownFileType]
	if !ok {
		sourcetree = DEFAULT_SOURCETREE
	}
	return sourcetree
}

func (pbxfile *PbxFile) defaultPath(filePath string) string {
	defaultPath, ok := PATH_BY_FILETYPE[pbxfile.LastKnownFileType]
	if !ok {
		return filePath
	}
	return path.Join(defaultPath, path.Base(filePath))
}

// needsName is true when the navigator name differs from the path, as for
// SDK frameworks referenced by their full system path.
func (pbxfile *PbxFile) needsName() bool {
	return pbxfile.Path != "" && pbxfile.Path != pbxfile.Basename
}
