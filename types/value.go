// Package types contains value objects mirroring the Telegram Bot API schemas
// and the parser which builds them from raw JSON.
//
// Every value object implements Value. Nested value objects are pointers and
// sequences are slices, so a missing field always reads as nil. Polymorphic
// schemas (command scopes, inline query results, chat members, etc.) are
// interfaces with a closed set of variants, resolved by a discriminator.
package types

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawMessage is an undecoded JSON value.
type RawMessage = jsoniter.RawMessage

// Shape is the name of a remote schema, e.g. "Message" or
// "BotCommandScopeAllChatAdministrators".
type Shape string

// Value is implemented by every value object.
type Value interface {
	Shape() Shape
}

// Object is a raw JSON object keyed by field name.
type Object map[string]RawMessage

// Has checks if the key is present and not null.
func (o Object) Has(key string) bool {
	raw, ok := o[key]
	return ok && !isNull(raw)
}

// Get decodes the field into v. It returns false if the field is missing,
// null or does not fit v.
func (o Object) Get(key string, v interface{}) bool {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return false
	}

	return json.Unmarshal(raw, v) == nil
}

// String returns a string field or an empty string.
func (o Object) String(key string) string {
	var value string
	o.Get(key, &value)
	return value
}

func isNull(raw RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 'n':
			return true
		default:
			return false
		}
	}

	return true
}
