// Package manifest edits AndroidManifest.xml. Entries are keyed by their
// android:name attribute and are only ever added, never replaced.
package manifest

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

const (
	nameAttr       = "android:name"
	valueAttr      = "android:value"
	launchModeAttr = "android:launchMode"

	IndentSpaces = 4
)

var ErrNoApplication = errors.New("manifest has no <application> element")

type Document struct {
	doc *etree.Document
}

func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if doc.Root() == nil || doc.Root().Tag != "manifest" {
		return nil, errors.New("parse manifest: root element is not <manifest>")
	}
	return &Document{doc: doc}, nil
}

func Load(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if doc.Root() == nil || doc.Root().Tag != "manifest" {
		return nil, fmt.Errorf("read manifest %s: root element is not <manifest>", path)
	}
	return &Document{doc: doc}, nil
}

// Bytes serializes the document re-indented with four spaces.
func (d *Document) Bytes() ([]byte, error) {
	d.doc.Indent(IndentSpaces)
	return d.doc.WriteToBytes()
}

func (d *Document) Save(path string) error {
	d.doc.Indent(IndentSpaces)
	if err := d.doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

func (d *Document) root() *etree.Element {
	return d.doc.Root()
}

// application returns application[0], or nil.
func (d *Document) application() *etree.Element {
	return d.root().SelectElement("application")
}

func names(elements []*etree.Element) []string {
	var out []string
	for _, el := range elements {
		out = append(out, el.SelectAttrValue(nameAttr, ""))
	}
	return out
}

func findByName(elements []*etree.Element, name string) *etree.Element {
	for _, el := range elements {
		if el.SelectAttrValue(nameAttr, "") == name {
			return el
		}
	}
	return nil
}

func (d *Document) UsesPermissions() []string {
	return names(d.root().SelectElements("uses-permission"))
}

// AddUsesPermission adds <uses-permission android:name=name/> under
// <manifest> unless an entry with the exact same name exists. New entries go
// after the last existing permission, or before <application>.
func (d *Document) AddUsesPermission(name string) bool {
	root := d.root()
	existing := root.SelectElements("uses-permission")
	if findByName(existing, name) != nil {
		return false
	}

	permission := etree.NewElement("uses-permission")
	permission.CreateAttr(nameAttr, name)
	switch {
	case len(existing) > 0:
		root.InsertChildAt(existing[len(existing)-1].Index()+1, permission)
	case d.application() != nil:
		root.InsertChildAt(d.application().Index(), permission)
	default:
		root.AddChild(permission)
	}
	return true
}

// MetaData returns the android:value of the application meta-data entry
// called name.
func (d *Document) MetaData(name string) (string, bool) {
	app := d.application()
	if app == nil {
		return "", false
	}
	el := findByName(app.SelectElements("meta-data"), name)
	if el == nil {
		return "", false
	}
	return el.SelectAttrValue(valueAttr, ""), true
}

// AddMetaData appends a meta-data entry to application[0] unless one with the
// same name already exists.
func (d *Document) AddMetaData(name, value string) (bool, error) {
	app := d.application()
	if app == nil {
		return false, ErrNoApplication
	}
	if findByName(app.SelectElements("meta-data"), name) != nil {
		return false, nil
	}
	el := app.CreateElement("meta-data")
	el.CreateAttr(nameAttr, name)
	el.CreateAttr(valueAttr, value)
	return true, nil
}

func (d *Document) Activities() []string {
	app := d.application()
	if app == nil {
		return nil
	}
	return names(app.SelectElements("activity"))
}

// SetMainActivityLaunchMode sets android:launchMode on the first activity of
// application[0]. It reports false when there is no activity.
func (d *Document) SetMainActivityLaunchMode(mode string) bool {
	app := d.application()
	if app == nil {
		return false
	}
	activity := app.SelectElement("activity")
	if activity == nil {
		return false
	}
	activity.CreateAttr(launchModeAttr, mode)
	return true
}

func (d *Document) LaunchModes() []string {
	app := d.application()
	if app == nil {
		return nil
	}
	var out []string
	for _, activity := range app.SelectElements("activity") {
		out = append(out, activity.SelectAttrValue(launchModeAttr, ""))
	}
	return out
}
