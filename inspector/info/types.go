package info

// MaxFieldNumber is the upper bound used for "to max" reserved ranges
const MaxFieldNumber = 536870911

// Syntax represents the syntax statement, its value is always "proto3"
type Syntax struct {
	Value string
}

// Package represents a package statement
type Package struct {
	Value string
}

// Import represents an import statement
type Import struct {
	Value    string // Imported path, unquoted
	IsPublic bool
	IsWeak   bool
}

// Value represents an enum entry
type Value struct {
	Name    string
	Number  int
	Options []*Option
}

// Enum represents an enum declaration, top level or nested in a message
type Enum struct {
	Name    string
	Values  []*Value
	Options []*Option
}

// Field represents a message or oneof field
type Field struct {
	Repeated bool
	Type     string // Scalar keyword or (possibly dotted) message/enum reference
	Name     string
	Index    int
	Options  []*Option
}

// Range represents a reserved field number range
type Range struct {
	From int
	To   int
	Max  bool // Range was declared with "to max"
}

// Reserved represents a reserved statement; either Ranges or Names is set, never both
type Reserved struct {
	Ranges []*Range
	Names  []string
}

// Oneof represents a oneof block
type Oneof struct {
	Name    string
	Fields  []*Field
	Options []*Option
}

// Map represents a map field
type Map struct {
	Name    string
	KeyType string
	Type    string
	Index   int
	Options []*Option
}

// Message represents a message declaration
type Message struct {
	Name     string
	Reserved []*Reserved
	Fields   []*Field
	Oneofs   []*Oneof
	Maps     []*Map
	Enums    []*Enum
	Messages []*Message
	Options  []*Option
}

// Request represents an rpc input type
type Request struct {
	Stream bool
	Type   string
}

// Response represents an rpc output type
type Response struct {
	Stream bool
	Type   string
}

// Rpc represents a service method
type Rpc struct {
	Name     string
	Request  *Request
	Response *Response
	Options  []*Option
}

// Service represents a service declaration
type Service struct {
	Name    string
	Rpcs    []*Rpc
	Options []*Option
}

// IsScalar reports whether typeName is one of the proto3 scalar keywords
func IsScalar(typeName string) bool {
	_, ok := scalarTypes[typeName]
	return ok
}

// IsKeyType reports whether typeName is allowed as a map key
func IsKeyType(typeName string) bool {
	return scalarTypes[typeName]
}

// scalarTypes maps scalar keywords to whether they may be used as a map key
var scalarTypes = map[string]bool{
	"double":   false,
	"float":    false,
	"bytes":    false,
	"int32":    true,
	"int64":    true,
	"uint32":   true,
	"uint64":   true,
	"sint32":   true,
	"sint64":   true,
	"fixed32":  true,
	"fixed64":  true,
	"sfixed32": true,
	"sfixed64": true,
	"bool":     true,
	"string":   true,
}
