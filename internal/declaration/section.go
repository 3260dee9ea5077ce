package declaration

// Field is one key = value line of a section.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Section is one named site declaration, fields in source order.
type Section struct {
	Name   string  `json:"name"`
	Line   int     `json:"line"`
	Fields []Field `json:"fields"`
}

// Get returns the value of key and whether it is present.
func (s Section) Get(key string) (string, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the value of key, or "" when absent.
func (s Section) Value(key string) string {
	v, _ := s.Get(key)
	return v
}

// Keys returns the field keys in order.
func (s Section) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}
