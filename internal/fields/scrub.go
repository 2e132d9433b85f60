package fields

import "reflect"

// Scrub blanks every string reachable from v that IsAbsent, so a decoded
// value never carries the literal sentinel. v must be a pointer; other values
// are left alone since they cannot be modified.
func Scrub(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	scrubValue(rv.Elem())
}

func scrubValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() && IsAbsent(v.String()) {
			v.SetString("")
		}
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			scrubValue(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				scrubValue(v.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			scrubValue(v.Index(i))
		}
	case reflect.Map:
		if v.IsNil() || v.Type().Elem().Kind() != reflect.String {
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			if IsAbsent(iter.Value().String()) {
				v.SetMapIndex(iter.Key(), reflect.Zero(v.Type().Elem()))
			}
		}
	}
}
