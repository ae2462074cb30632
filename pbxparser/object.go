package pbxparser

import (
	"bytes"
	"encoding/json"
	"strings"
)

type IterateActionType = int8

const (
	IterateActionContinue IterateActionType = iota
	IterateActionBreak
)

const CommentKeySuffix = "_comment"

type ObjectItem = SliceItem

// Object is a dictionary node of a parsed project file. The zero value is an
// empty, read-only object; use NewObject before calling Set.
type Object struct {
	*SliceMap
}

type ObjectWithUUID struct {
	Object
	UUID string
}

func NewObjectItem(key string, value interface{}) ObjectItem {
	return SliceItem{key: key, data: value}
}

func NewObject() Object {
	return Object{
		SliceMap: NewSliceMap(),
	}
}

func NewObjectWithData(items []ObjectItem) Object {
	o := NewObject()
	for _, item := range items {
		o.Set(item.key, item.data)
	}
	return o
}

func ToCommentKey(key string) string {
	return key + CommentKeySuffix
}

func FromCommentKey(key string) string {
	return strings.TrimSuffix(key, CommentKeySuffix)
}

func IsCommentKey(key string) bool {
	return strings.HasSuffix(key, CommentKeySuffix)
}

func NonCommentsFilter(key string, _ interface{}) bool {
	return !IsCommentKey(key)
}

func OnlyCommentsFilter(key string, _ interface{}) bool {
	return IsCommentKey(key)
}

func (o Object) IsNil() bool {
	return o.SliceMap == nil
}

func (o Object) IsEmpty() bool {
	if o.SliceMap == nil {
		return true
	}
	return o.Size() == 0
}

func (o Object) Get(key string) (interface{}, bool) {
	if o.SliceMap == nil {
		return nil, false
	}
	return o.SliceMap.Get(key)
}

func (o Object) ForceGet(key string) interface{} {
	if o.SliceMap == nil {
		return nil
	}
	return o.SliceMap.ForceGet(key)
}

func (o Object) Has(key string) bool {
	if o.SliceMap == nil {
		return false
	}
	return o.SliceMap.Has(key)
}

func (o Object) GetObject(key string) Object {
	if value, ok := o.Get(key); ok {
		if obj, ok := value.(Object); ok {
			return obj
		}
	}
	return Object{}
}

func (o Object) GetString(key string) string {
	if value, ok := o.Get(key); ok {
		if v, ok := value.(string); ok {
			return v
		}
	}
	return ""
}

func (o Object) GetArray(key string) []interface{} {
	if value, ok := o.Get(key); ok {
		if arr, ok := value.([]interface{}); ok {
			return arr
		}
	}
	return nil
}

type ApplyFunc = func(key string, val interface{}) IterateActionType
type FilterFunc = func(key string, val interface{}) bool

func (o Object) Foreach(apply ApplyFunc) {
	if o.IsEmpty() {
		return
	}
	for _, item := range o.Items() {
		if item.data == nil {
			continue
		}
		if apply(item.key, item.data) == IterateActionBreak {
			break
		}
	}
}

func (o Object) ForeachWithFilter(apply ApplyFunc, filter FilterFunc) {
	o.Foreach(func(key string, val interface{}) IterateActionType {
		if !filter(key, val) {
			return IterateActionContinue
		}
		return apply(key, val)
	})
}

func (o Object) Filter(f FilterFunc) Object {
	newObj := NewObject()
	o.Foreach(func(key string, val interface{}) IterateActionType {
		if f(key, val) {
			newObj.Set(key, val)
		}
		return IterateActionContinue
	})
	return newObj
}

// MarshalJSON keeps key order so dumps can be diffed against the source file.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	o.Foreach(func(key string, val interface{}) IterateActionType {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var k, v []byte
		if k, err = json.Marshal(key); err != nil {
			return IterateActionBreak
		}
		if v, err = json.Marshal(val); err != nil {
			return IterateActionBreak
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return IterateActionContinue
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
