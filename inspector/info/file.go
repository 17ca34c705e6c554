package info

// File represents a parsed proto3 schema file
type File struct {
	Syntax   string // Always "proto3"
	Package  string // Dotted package name, empty if absent
	Imports  []*Import
	Enums    []*Enum    // Top level enums
	Messages []*Message // Top level messages
	Options  []*Option  // File level options
	Services []*Service
}

// Filter returns a copy of the file keeping only the top level enums and messages
// whose qualified name satisfies keep. Nested declarations are not filtered.
// The receiver is left unchanged.
func (f *File) Filter(keep func(qualifiedName string) bool) *File {
	ret := *f
	ret.Enums = nil
	ret.Messages = nil
	for _, e := range f.Enums {
		if keep(Qualify(f.Package, e.Name)) {
			ret.Enums = append(ret.Enums, e)
		}
	}
	for _, m := range f.Messages {
		if keep(Qualify(f.Package, m.Name)) {
			ret.Messages = append(ret.Messages, m)
		}
	}
	return &ret
}

// IsEmpty reports whether the file declares no top level enums or messages
func (f *File) IsEmpty() bool {
	return len(f.Enums) == 0 && len(f.Messages) == 0
}

// Message returns top level message by name
func (f *File) Message(name string) *Message {
	for _, m := range f.Messages {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Enum returns top level enum by name
func (f *File) Enum(name string) *Enum {
	for _, e := range f.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Dependencies returns imported paths in declaration order
func (f *File) Dependencies() []string {
	var result []string
	for _, imp := range f.Imports {
		result = append(result, imp.Value)
	}
	return result
}
