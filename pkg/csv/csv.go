package csv

import (
	"fmt"
	"reflect"
	"strings"
)

// ObjectToCsv renders the fields of a struct (or pointer to struct) as a comma separated header and value line.
// Nested struct fields are flattened one level deep as Outer.Inner.
func ObjectToCsv(objectArgs interface{}) (string, string, error) {
	objectRef, err := structValue(objectArgs)
	if err != nil {
		return "", "", err
	}

	names, values := flatten(objectRef)
	return strings.Join(names, ","), strings.Join(values, ","), nil
}

// ObjectListToCsv renders a slice of structs as a header line followed by one line per element.
func ObjectListToCsv(object interface{}) (string, error) {
	sliceValue := reflect.ValueOf(object)
	if sliceValue.Kind() != reflect.Slice && sliceValue.Kind() != reflect.Array {
		return "", fmt.Errorf("ObjectListToCsv: %s is not a slice", sliceValue.Kind())
	}

	resNameStr := ""
	resValueStr := ""
	for i := 0; i < sliceValue.Len(); i++ {
		item, err := structValue(sliceValue.Index(i).Interface())
		if err != nil {
			return "", err
		}

		names, values := flatten(item)
		resNameStr = strings.Join(names, ",")
		resValueStr += strings.Join(values, ",") + "\n"
	}

	return resNameStr + "\n" + resValueStr, nil
}

func structValue(objectArgs interface{}) (reflect.Value, error) {
	objectRef := reflect.ValueOf(objectArgs)
	for objectRef.Kind() == reflect.Ptr {
		if objectRef.IsNil() {
			return reflect.Value{}, fmt.Errorf("structValue: nil %s", objectRef.Type())
		}
		objectRef = objectRef.Elem()
	}
	if objectRef.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("structValue: %s is not a struct", objectRef.Kind())
	}
	return objectRef, nil
}

func flatten(objectRef reflect.Value) ([]string, []string) {
	var (
		names  []string
		values []string
	)
	objectTypeList := objectRef.Type()
	for i := 0; i < objectRef.NumField(); i++ {
		field := objectTypeList.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue
		}
		objectField := objectRef.Field(i)
		if objectField.Kind() == reflect.Struct && !isStringer(objectField) {
			subObjectType := objectField.Type()
			for j := 0; j < objectField.NumField(); j++ {
				subObjectField := objectField.Field(j)
				if !subObjectField.CanInterface() {
					continue
				}
				names = append(names, field.Name+"."+subObjectType.Field(j).Name)
				values = append(values, fmt.Sprintf("%v", subObjectField.Interface()))
			}
			continue
		}
		if !objectField.CanInterface() {
			continue
		}
		names = append(names, field.Name)
		values = append(values, fmt.Sprintf("%v", objectField.Interface()))
	}
	return names, values
}

func isStringer(v reflect.Value) bool {
	if !v.CanInterface() {
		return false
	}
	_, ok := v.Interface().(fmt.Stringer)
	return ok
}
