package proto

import (
	"fmt"

	"github.com/viant/protoscope/inspector/info"
)

// Parse strips comments from src and parses it as a proto3 file
func Parse(src []byte) (*info.File, error) {
	return parse(proto3.file, StripComments(string(src)))
}

// ParseNode strips comments from src and parses it as the single production identified by kind
func ParseNode(kind info.Kind, src string) (info.Node, error) {
	text := StripComments(src)
	switch kind {
	case info.KindFile:
		return parseNode(proto3.file, text)
	case info.KindSyntax:
		return parseNode(proto3.syntax, text)
	case info.KindImport:
		return parseNode(proto3.imports, text)
	case info.KindPackage:
		return parseNode(proto3.pkg, text)
	case info.KindOption:
		return parseNode(proto3.option, text)
	case info.KindValue:
		return parseNode(proto3.value, text)
	case info.KindEnum:
		return parseNode(proto3.enum, text)
	case info.KindField:
		return parseNode(proto3.field, text)
	case info.KindRange:
		return parseNode(proto3.rangeDef, text)
	case info.KindReserved:
		return parseNode(proto3.reserved, text)
	case info.KindOneof:
		return parseNode(proto3.oneof, text)
	case info.KindMap:
		return parseNode(proto3.mapField, text)
	case info.KindMessage:
		return parseNode(proto3.message, text)
	case info.KindRequest:
		return parseNode(proto3.request, text)
	case info.KindResponse:
		return parseNode(proto3.response, text)
	case info.KindRpc:
		return parseNode(proto3.rpc, text)
	case info.KindService:
		return parseNode(proto3.service, text)
	}
	return nil, fmt.Errorf("unsupported node kind: %v", kind)
}

func parseNode[T info.Node](r rule[T], text string) (info.Node, error) {
	value, err := parse(r, text)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// parse applies r to the whole text, trailing whitespace is allowed
func parse[T any](r rule[T], text string) (T, error) {
	s := newScanner(text)
	value, ok := r(s)
	if ok {
		s.skipSpaces()
		if s.eof() {
			return value, nil
		}
		s.fail("END OF INPUT")
	}
	var zero T
	return zero, s.error()
}
