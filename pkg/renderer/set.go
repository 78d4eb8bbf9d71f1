package renderer

// Set is an immutable, insertion-ordered subset of a Registry. The zero value
// and nil are both valid empty sets. Methods that add entries return a new
// Set and leave the receiver untouched.
type Set struct {
	names    []string
	handlers map[string]Handler
}

var emptySet = &Set{}

// NewSet resolves names against reg and returns a Set holding them in the
// given order. An unknown name yields *UnknownRendererError.
func NewSet(reg *Registry, names ...string) (*Set, error) {
	return emptySet.Use(reg, names...)
}

// AllSet snapshots every renderer currently registered in reg.
func AllSet(reg *Registry) *Set {
	return reg.Snapshot()
}

// Use returns a copy of s extended with the named renderers looked up in reg.
// Names already in s keep their position and are re-bound to reg's current
// handler; new names are appended in argument order. On an unknown name the
// error is returned and no Set is built.
func (s *Set) Use(reg *Registry, names ...string) (*Set, error) {
	entries, err := reg.lookup(names)
	if err != nil {
		return nil, err
	}
	return s.with(entries), nil
}

// UseAll returns a copy of s merged with a full snapshot of reg.
func (s *Set) UseAll(reg *Registry) *Set {
	return s.Merge(reg.Snapshot())
}

// With returns a copy of s extended with entries, using the same merge rules
// as Use. Entries with an empty name or nil handler are skipped. With is
// unchecked: names are not looked up in any Registry, so the result may hold
// renderers outside the catalog. Controllers only install sets built through
// Use and UseAll.
func (s *Set) With(entries ...Entry) *Set {
	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		entry.Name = normalizeName(entry.Name)
		if entry.Name == "" || entry.Handler == nil {
			continue
		}
		filtered = append(filtered, entry)
	}
	return s.with(filtered)
}

// Merge returns a copy of s extended with every entry of other, in other's
// order.
func (s *Set) Merge(other *Set) *Set {
	return s.with(other.Entries())
}

func (s *Set) with(entries []Entry) *Set {
	size := s.Len() + len(entries)
	out := &Set{
		names:    make([]string, 0, size),
		handlers: make(map[string]Handler, size),
	}
	if s != nil {
		out.names = append(out.names, s.names...)
		for name, handler := range s.handlers {
			out.handlers[name] = handler
		}
	}
	for _, entry := range entries {
		if _, exists := out.handlers[entry.Name]; !exists {
			out.names = append(out.names, entry.Name)
		}
		out.handlers[entry.Name] = entry.Handler
	}
	return out
}

// Len reports the number of renderers in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Has reports whether name is part of the set.
func (s *Set) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup returns the handler bound to name.
func (s *Set) Lookup(name string) (Handler, bool) {
	if s == nil {
		return nil, false
	}
	handler, ok := s.handlers[normalizeName(name)]
	return handler, ok
}

// Names returns the renderer names in insertion order.
func (s *Set) Names() []string {
	if s == nil || len(s.names) == 0 {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Entries returns the set contents in insertion order.
func (s *Set) Entries() []Entry {
	if s == nil || len(s.names) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, Entry{Name: name, Handler: s.handlers[name]})
	}
	return out
}
