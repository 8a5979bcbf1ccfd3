package util

import "reflect"

// UnwrapType strips every pointer level from t
func UnwrapType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// IsNilable reports whether a value of type t can hold nil
func IsNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// IsClassType reports whether t is a reference-like or composite type that may be bound to
// its zero value when class types are configured as nullable
func IsClassType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Interface, reflect.Map, reflect.Slice, reflect.Ptr:
		return true
	default:
		return false
	}
}
