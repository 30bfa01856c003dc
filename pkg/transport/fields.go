package transport

import "net/url"

// FieldSource is anything that can flatten itself into remote field names.
type FieldSource interface {
	Fields() *Fields
}

// Fields is an insertion-ordered set of remote field names to values.
// Names are case-sensitive. Setting an existing name replaces its value
// and keeps its original position.
type Fields struct {
	names  []string
	values map[string]string
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]string)}
}

// FieldsOf builds a set from alternating name, value pairs.
func FieldsOf(pairs ...string) *Fields {
	f := NewFields()
	for i := 0; i+1 < len(pairs); i += 2 {
		f.Set(pairs[i], pairs[i+1])
	}
	return f
}

// Merge flattens the sources into one set, in order. Later sources win.
func Merge(sources ...FieldSource) *Fields {
	f := NewFields()
	for _, src := range sources {
		if src == nil {
			continue
		}
		f.Merge(src.Fields())
	}
	return f
}

func (f *Fields) Set(name, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = value
}

func (f *Fields) Get(name string) (string, bool) {
	if f == nil {
		return "", false
	}
	v, ok := f.values[name]
	return v, ok
}

func (f *Fields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Names returns the field names in insertion order.
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Merge copies every field of other into f, in other's order.
func (f *Fields) Merge(other *Fields) *Fields {
	if other == nil {
		return f
	}
	for _, name := range other.names {
		f.Set(name, other.values[name])
	}
	return f
}

func (f *Fields) Clone() *Fields {
	return NewFields().Merge(f)
}

// Fields lets a *Fields be passed wherever a FieldSource is expected.
func (f *Fields) Fields() *Fields { return f }

// Values returns the set as form values.
func (f *Fields) Values() url.Values {
	v := make(url.Values, f.Len())
	if f == nil {
		return v
	}
	for _, name := range f.names {
		v.Set(name, f.values[name])
	}
	return v
}
