package defaults

import "reflect"

func toInterfaces(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func reflectType[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
