package types

import (
	"bytes"
	"reflect"
	"sort"
)

// family describes a polymorphic shape: an interface implemented
// by a closed set of variants.
type family struct {
	name    Shape
	key     string
	iface   reflect.Type
	resolve func(Object) Shape
}

var (
	shapeTypes     = make(map[Shape]reflect.Type)
	familiesByName = make(map[Shape]*family)
	familiesByType = make(map[reflect.Type]*family)
)

func register(values ...Value) {
	for _, value := range values {
		shapeTypes[value.Shape()] = reflect.TypeOf(value).Elem()
	}
}

// registerFamily binds a family interface (passed as a typed nil pointer to it)
// to a variant resolver. key names the discriminator field for diagnostics.
func registerFamily(name Shape, iface interface{}, key string, resolve func(Object) Shape) {
	fam := &family{
		name:    name,
		key:     key,
		iface:   reflect.TypeOf(iface).Elem(),
		resolve: resolve,
	}

	familiesByName[name] = fam
	familiesByType[fam.iface] = fam
}

// byTag resolves variants by the string value of key.
func byTag(key string, variants map[string]Shape) func(Object) Shape {
	return func(o Object) Shape {
		return variants[o.String(key)]
	}
}

// Shapes lists every shape name known to the parser, families included.
func Shapes() []Shape {
	shapes := make([]Shape, 0, len(shapeTypes)+len(familiesByName))
	for shape := range shapeTypes {
		shapes = append(shapes, shape)
	}

	for shape := range familiesByName {
		shapes = append(shapes, shape)
	}

	sort.Slice(shapes, func(i, j int) bool { return shapes[i] < shapes[j] })
	return shapes
}

// IsFamily checks if the shape is polymorphic.
func IsFamily(shape Shape) bool {
	_, ok := familiesByName[shape]
	return ok
}

// tagged marshals v and prepends the discriminator field to the resulting object.
// v must not implement json.Marshaler itself, so callers pass a plain copy.
func tagged(key string, tag interface{}, v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	value, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(key) + len(value) + 4)
	buf.WriteString(`{"`)
	buf.WriteString(key)
	buf.WriteString(`":`)
	buf.Write(value)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 0 && rest[0] != '}' {
		buf.WriteByte(',')
	}

	buf.Write(body[1:])
	return buf.Bytes(), nil
}
