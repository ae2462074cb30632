package pbxproj

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/soapywu/pushkit/pbxparser"
)

var (
	toCommentKey       = pbxparser.ToCommentKey
	fromCommentKey     = pbxparser.FromCommentKey
	nonCommentsFilter  = pbxparser.NonCommentsFilter
	onlyCommentsFilter = pbxparser.OnlyCommentsFilter
)

func isObject(obj interface{}) bool {
	_, ok := obj.(pbxparser.Object)
	return ok
}

func toObject(obj interface{}) pbxparser.Object {
	return obj.(pbxparser.Object)
}

func isArray(obj interface{}) bool {
	_, ok := obj.([]interface{})
	return ok
}

func toArray(obj interface{}) []interface{} {
	return obj.([]interface{})
}

func isString(obj interface{}) bool {
	_, ok := obj.(string)
	return ok
}

func toString(obj interface{}) string {
	return obj.(string)
}

func isInt(obj interface{}) bool {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return true
	}
	return false
}

func toIntString(obj interface{}) string {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(obj).Int(), 10)
	}
	return ""
}

// scalarString renders a string or int value the way it appears on disk.
func scalarString(obj interface{}) (string, bool) {
	if isString(obj) {
		return toString(obj), true
	}
	if isInt(obj) {
		return toIntString(obj), true
	}
	return "", false
}

var unquotedRegex = regexp.MustCompile(`(^")|("$)`)

func unquoted(text string) string {
	if text == "" {
		return text
	}
	return unquotedRegex.ReplaceAllString(text, "")
}

func quoted(text string) string {
	return `"` + unquoted(text) + `"`
}

var bareWordRegex = regexp.MustCompile(`^[A-Za-z0-9_$./]+$`)

// quoteIfNeeded follows Xcode: only strings made of word characters, '$',
// '.' and '/' are written bare. Already quoted text is returned as is.
func quoteIfNeeded(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text
	}
	if bareWordRegex.MatchString(text) {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, `\"`) + `"`
}

func interfaceToStringSlice(val interface{}) []string {
	if val == nil {
		return nil
	}
	switch val := val.(type) {
	case []interface{}:
		result := make([]string, 0, len(val))
		for _, v := range val {
			if s, ok := scalarString(v); ok {
				result = append(result, s)
			}
		}
		return result
	case string:
		return []string{val}
	default:
		return nil
	}
}

func stringToInterfaceSlice(val []string) []interface{} {
	if val == nil {
		return nil
	}
	result := make([]interface{}, len(val))
	for i, v := range val {
		result[i] = v
	}
	return result
}

func addToObjectList(obj pbxparser.Object, key string, val interface{}) {
	if obj.IsNil() {
		return
	}
	list := obj.ForceGet(key)
	if list == nil {
		list = []interface{}{val}
	} else {
		list = append(toArray(list), val)
	}
	obj.Set(key, list)
}

func addToObjectListOnlyNotExist(obj pbxparser.Object, key string, val interface{}, equal func(v1, v2 interface{}) bool) bool {
	if obj.IsNil() {
		return false
	}
	list := obj.ForceGet(key)
	if list == nil {
		list = []interface{}{val}
	} else {
		for _, v := range toArray(list) {
			if equal(v, val) {
				return false
			}
		}
		list = append(toArray(list), val)
	}
	obj.Set(key, list)
	return true
}

// listValues returns the ids of a "( ID /* comment */, ... )" list.
func listValues(obj pbxparser.Object, key string) []ObjectID {
	var ids []ObjectID
	for _, item := range obj.GetArray(key) {
		switch item := item.(type) {
		case pbxparser.Object:
			ids = append(ids, ObjectID(item.GetString("value")))
		case string:
			ids = append(ids, ObjectID(item))
		}
	}
	return ids
}

func sameListValue(v1, v2 interface{}) bool {
	return listItemValue(v1) == listItemValue(v2)
}

func listItemValue(v interface{}) string {
	switch v := v.(type) {
	case pbxparser.Object:
		return v.GetString("value")
	case CommentValue:
		return v.Value
	case string:
		return v
	}
	return ""
}
