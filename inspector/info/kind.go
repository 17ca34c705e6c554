package info

// Kind discriminates syntax tree nodes
type Kind int

const (
	KindFile Kind = iota
	KindSyntax
	KindImport
	KindPackage
	KindOption
	KindValue
	KindEnum
	KindField
	KindRange
	KindReserved
	KindOneof
	KindMap
	KindMessage
	KindRequest
	KindResponse
	KindRpc
	KindService
)

var kindNames = [...]string{
	KindFile:     "proto",
	KindSyntax:   "syntax",
	KindImport:   "import",
	KindPackage:  "package",
	KindOption:   "option",
	KindValue:    "value",
	KindEnum:     "enum",
	KindField:    "field",
	KindRange:    "range",
	KindReserved: "reserved",
	KindOneof:    "oneof",
	KindMap:      "map",
	KindMessage:  "message",
	KindRequest:  "request",
	KindResponse: "response",
	KindRpc:      "rpc",
	KindService:  "service",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is implemented by every syntax tree record
type Node interface {
	Kind() Kind
}

func (*File) Kind() Kind     { return KindFile }
func (*Syntax) Kind() Kind   { return KindSyntax }
func (*Import) Kind() Kind   { return KindImport }
func (*Package) Kind() Kind  { return KindPackage }
func (*Option) Kind() Kind   { return KindOption }
func (*Value) Kind() Kind    { return KindValue }
func (*Enum) Kind() Kind     { return KindEnum }
func (*Field) Kind() Kind    { return KindField }
func (*Range) Kind() Kind    { return KindRange }
func (*Reserved) Kind() Kind { return KindReserved }
func (*Oneof) Kind() Kind    { return KindOneof }
func (*Map) Kind() Kind      { return KindMap }
func (*Message) Kind() Kind  { return KindMessage }
func (*Request) Kind() Kind  { return KindRequest }
func (*Response) Kind() Kind { return KindResponse }
func (*Rpc) Kind() Kind      { return KindRpc }
func (*Service) Kind() Kind  { return KindService }
