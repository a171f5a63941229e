package rest

import (
	"reflect"
	"strings"
)

// jsonFieldName reports struct fields by their JSON name in validation errors.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
