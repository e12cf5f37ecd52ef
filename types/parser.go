package types

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// DiagnosticKind classifies a parse anomaly.
type DiagnosticKind string

const (
	// UnknownVariant is reported when a discriminator matches no known variant.
	UnknownVariant DiagnosticKind = "unknown variant"
	// UnknownShape is reported when Parse is called with a shape name nobody registered.
	UnknownShape DiagnosticKind = "unknown shape"
	// TypeMismatch is reported when a raw field does not fit the declared field type.
	TypeMismatch DiagnosticKind = "type mismatch"
	// OverrideMismatch is reported when an override returns a value of the wrong Go type
	// for the field it is assigned to.
	OverrideMismatch DiagnosticKind = "override mismatch"
)

// Diagnostic describes a value which was parsed as "no value".
type Diagnostic struct {
	Kind   DiagnosticKind
	Shape  Shape
	Field  string
	Detail string
}

func (d Diagnostic) String() string {
	if d.Field != "" {
		return fmt.Sprintf("%s: %s.%s: %s", d.Kind, d.Shape, d.Field, d.Detail)
	}

	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Shape, d.Detail)
}

// Parser builds value objects from raw JSON.
//
// Missing and null values always parse to nil. Overrides registered for a shape
// replace the default construction at every nesting level. Parser never
// mutates the registry and is safe for concurrent use. A nil *Parser parses
// without overrides and diagnostics.
type Parser struct {
	registry *Registry
	owner    interface{}
	diagnose func(Diagnostic)
}

// NewParser creates a parser which consults registry for overrides,
// passes client to override constructors and reports anomalies to diagnose.
// Any argument may be nil.
func NewParser(registry *Registry, client interface{}, diagnose func(Diagnostic)) *Parser {
	return &Parser{
		registry: registry,
		owner:    client,
		diagnose: diagnose,
	}
}

// Parse builds the value object of the given shape from raw.
// The shape may name a concrete schema or a polymorphic family.
func (p *Parser) Parse(shape Shape, raw RawMessage) Value {
	o, ok := p.object(shape, "", raw)
	if !ok {
		return nil
	}

	return p.parseObject(shape, o)
}

// ParseObject is Parse for an already split object.
func (p *Parser) ParseObject(shape Shape, o Object) Value {
	if o == nil {
		return nil
	}

	return p.parseObject(shape, o)
}

// Default builds the shape field by field, bypassing an override registered
// for the shape itself. Nested fields still honor overrides.
func (p *Parser) Default(shape Shape, o Object) Value {
	if o == nil {
		return nil
	}

	if fam, ok := familiesByName[shape]; ok {
		variant := fam.resolve(o)
		if variant == "" {
			detail := "no variant matched"
			if fam.key != "" {
				detail = fmt.Sprintf("%s=%q", fam.key, o.String(fam.key))
			}

			p.report(UnknownVariant, shape, "", detail)
			return nil
		}

		return p.parseObject(variant, o)
	}

	t, ok := shapeTypes[shape]
	if !ok {
		p.report(UnknownShape, shape, "", "not registered")
		return nil
	}

	value := reflect.New(t)
	p.fill(shape, value.Elem(), o)
	return value.Interface().(Value)
}

// As decodes raw into T. T may be a value object pointer, a family interface,
// a slice of either, or any plain JSON-decodable type.
func As[T any](p *Parser, raw RawMessage) T {
	var zero T
	value, ok := p.decode("", "", reflect.TypeOf((*T)(nil)).Elem(), raw)
	if !ok {
		return zero
	}

	result, _ := value.Interface().(T)
	return result
}

func (p *Parser) parseObject(shape Shape, o Object) Value {
	if ctor, ok := p.lookup(shape); ok {
		return ctor(o, p.client())
	}

	return p.Default(shape, o)
}

func (p *Parser) lookup(shape Shape) (Constructor, bool) {
	if p == nil {
		return nil, false
	}

	return p.registry.Lookup(shape)
}

func (p *Parser) client() interface{} {
	if p == nil {
		return nil
	}

	return p.owner
}

func (p *Parser) report(kind DiagnosticKind, shape Shape, field, detail string) {
	if p == nil || p.diagnose == nil {
		return
	}

	p.diagnose(Diagnostic{
		Kind:   kind,
		Shape:  shape,
		Field:  field,
		Detail: detail,
	})
}

func (p *Parser) object(shape Shape, field string, raw RawMessage) (Object, bool) {
	if isNull(raw) {
		return nil, false
	}

	o := make(Object)
	if err := json.Unmarshal(raw, &o); err != nil {
		p.report(TypeMismatch, shape, field, err.Error())
		return nil, false
	}

	return o, true
}

func (p *Parser) fill(shape Shape, value reflect.Value, o Object) {
	for _, field := range fieldsOf(value.Type()) {
		raw, ok := o[field.name]
		if !ok || isNull(raw) {
			continue
		}

		if decoded, ok := p.decode(shape, field.name, field.typ, raw); ok {
			value.FieldByIndex(field.index).Set(decoded)
		}
	}
}

func (p *Parser) decode(shape Shape, field string, t reflect.Type, raw RawMessage) (reflect.Value, bool) {
	if isNull(raw) {
		return reflect.Value{}, false
	}

	switch {
	case t == chatIDType:
		return p.decodeChatID(shape, field, raw)

	case t.Kind() == reflect.Interface:
		if fam, ok := familiesByType[t]; ok {
			return p.decodeValue(shape, field, fam.name, t, raw)
		}

	case t.Kind() == reflect.Ptr && t.Implements(valueType):
		return p.decodeValue(shape, field, shapeOf(t), t, raw)

	case t.Kind() == reflect.Struct && reflect.PtrTo(t).Implements(valueType):
		value, ok := p.decodeValue(shape, field, shapeOf(reflect.PtrTo(t)), reflect.PtrTo(t), raw)
		if !ok {
			return value, false
		}

		return value.Elem(), true

	case t.Kind() == reflect.Slice && parsed(t.Elem()):
		items := make([]RawMessage, 0)
		if err := json.Unmarshal(raw, &items); err != nil {
			p.report(TypeMismatch, shape, field, err.Error())
			return reflect.Value{}, false
		}

		slice := reflect.MakeSlice(t, 0, len(items))
		for _, item := range items {
			if value, ok := p.decode(shape, field, t.Elem(), item); ok {
				slice = reflect.Append(slice, value)
			}
		}

		return slice, true
	}

	ptr := reflect.New(t)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		p.report(TypeMismatch, shape, field, err.Error())
		return reflect.Value{}, false
	}

	return ptr.Elem(), true
}

func (p *Parser) decodeValue(shape Shape, field string, target Shape, t reflect.Type, raw RawMessage) (reflect.Value, bool) {
	o, ok := p.object(shape, field, raw)
	if !ok {
		return reflect.Value{}, false
	}

	result := p.parseObject(target, o)
	if result == nil {
		return reflect.Value{}, false
	}

	value := reflect.ValueOf(result)
	if !value.Type().AssignableTo(t) {
		p.report(OverrideMismatch, shape, field, fmt.Sprintf("%T is not %s", result, t))
		return reflect.Value{}, false
	}

	if value.Kind() == reflect.Ptr && value.IsNil() {
		return reflect.Value{}, false
	}

	return value, true
}

func (p *Parser) decodeChatID(shape Shape, field string, raw RawMessage) (reflect.Value, bool) {
	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return reflect.ValueOf(ID(id)), true
	}

	var username string
	if err := json.Unmarshal(raw, &username); err == nil && username != "" {
		return reflect.ValueOf(Username(strings.TrimPrefix(username, "@"))), true
	}

	p.report(TypeMismatch, shape, field, "chat id must be an integer or a username")
	return reflect.Value{}, false
}

var (
	valueType  = reflect.TypeOf((*Value)(nil)).Elem()
	chatIDType = reflect.TypeOf((*ChatID)(nil)).Elem()
)

func shapeOf(t reflect.Type) Shape {
	return reflect.Zero(t).Interface().(Value).Shape()
}

// parsed checks if values of t must go through the parser rather than plain decoding.
func parsed(t reflect.Type) bool {
	switch {
	case t == chatIDType:
		return true
	case t.Kind() == reflect.Interface:
		_, ok := familiesByType[t]
		return ok
	case t.Kind() == reflect.Ptr:
		return t.Implements(valueType)
	case t.Kind() == reflect.Struct:
		return reflect.PtrTo(t).Implements(valueType)
	case t.Kind() == reflect.Slice:
		return parsed(t.Elem())
	default:
		return false
	}
}

type fieldInfo struct {
	name  string
	index []int
	typ   reflect.Type
}

var fieldCache sync.Map

func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	fields := collectFields(t, nil)
	fieldCache.Store(t, fields)
	return fields
}

func collectFields(t reflect.Type, prefix []int) []fieldInfo {
	fields := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(append([]int{}, prefix...), i)
		tag := field.Tag.Get("json")
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			continue
		}

		if field.Anonymous && name == "" && field.Type.Kind() == reflect.Struct {
			fields = append(fields, collectFields(field.Type, index)...)
			continue
		}

		if field.PkgPath != "" {
			continue
		}

		if name == "" {
			name = field.Name
		}

		fields = append(fields, fieldInfo{
			name:  name,
			index: index,
			typ:   field.Type,
		})
	}

	return fields
}
