// Package marshal converts API calls into wire requests and wire responses
// into results or typed errors.
package marshal

import (
	"reflect"
	"sort"
)

// Args holds named call arguments.
//
// A key may be present with an absent value: the argument is then declared by the method
// (and eligible for defaults) but is not sent. Absent values are nil, typed nils,
// empty strings, false and numeric zeros. Use pointers to send an explicit zero or false.
type Args map[string]interface{}

// Set sets the argument value and returns the receiver for chaining.
func (a Args) Set(key string, value interface{}) Args {
	a[key] = value
	return a
}

// Declared checks if the argument key is present, whether the value is absent or not.
func (a Args) Declared(key string) bool {
	_, ok := a[key]
	return ok
}

// Clone returns a shallow copy of the arguments.
func (a Args) Clone() Args {
	clone := make(Args, len(a))
	for key, value := range a {
		clone[key] = value
	}

	return clone
}

// Compact returns a copy without absent values.
func (a Args) Compact() Args {
	compact := make(Args, len(a))
	for key, value := range a {
		if !IsAbsent(value) {
			compact[key] = value
		}
	}

	return compact
}

// Keys returns the sorted argument keys.
func (a Args) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// IsAbsent checks if the value is not to be sent.
func IsAbsent(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	default:
		return false
	}
}

// Defaults are substituted for declared arguments with absent values.
type Defaults map[string]interface{}

// Apply returns a copy of args with defaults substituted.
// Explicitly set values always win over defaults.
func (d Defaults) Apply(args Args) Args {
	if len(d) == 0 {
		return args
	}

	result := args.Clone()
	for key, value := range d {
		if IsAbsent(value) {
			continue
		}

		if current, ok := args[key]; ok && IsAbsent(current) {
			result[key] = value
		}
	}

	return result
}
