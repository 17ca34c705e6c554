package proto

import (
	"fmt"

	"github.com/viant/protoscope/inspector/info"
)

// grammar holds the proto3 productions; message refers to itself through lazy
type grammar struct {
	syntax   rule[*info.Syntax]
	imports  rule[*info.Import]
	pkg      rule[*info.Package]
	option   rule[*info.Option]
	field    rule[*info.Field]
	oneof    rule[*info.Oneof]
	mapField rule[*info.Map]
	rangeDef rule[*info.Range]
	reserved rule[*info.Reserved]
	value    rule[*info.Value]
	enum     rule[*info.Enum]
	message  rule[*info.Message]
	request  rule[*info.Request]
	response rule[*info.Response]
	rpc      rule[*info.Rpc]
	service  rule[*info.Service]
	file     rule[*info.File]
}

var proto3 = newGrammar()

var scalarTypes = []string{
	"double", "float", "int32", "int64", "uint32", "uint64", "sint32", "sint64",
	"fixed32", "fixed64", "sfixed32", "sfixed64", "bool", "string", "bytes",
}

var keyTypes = []string{
	"int32", "int64", "uint32", "uint64", "sint32", "sint64",
	"fixed32", "fixed64", "sfixed32", "sfixed64", "bool", "string",
}

var emptyStatement = transform(symbol(";"), func(string) info.Node { return nil })

func newGrammar() *grammar {
	g := &grammar{}

	fieldType := spaced(choice(keywords(scalarTypes...), typeReference("MESSAGE TYPE")))

	fieldNumber := production(func(s *scanner) (int, bool) {
		s.skipSpaces()
		text, ok := intLiteral(s)
		if !ok {
			return 0, false
		}
		number, err := info.ParseInt(text)
		if err != nil {
			s.fail("FIELD NUMBER")
			return 0, false
		}
		return int(number), true
	})

	optionName := production(func(s *scanner) (string, bool) {
		head, ok := choice(
			identifier("OPTION NAME"),
			production(func(s *scanner) (string, bool) {
				if _, ok := exact("(")(s); !ok {
					return "", false
				}
				name, ok := spaced(fullIdentifier("OPTION NAME"))(s)
				if !ok {
					return "", false
				}
				if _, ok := symbol(")")(s); !ok {
					return "", false
				}
				return "(" + name + ")", true
			}),
		)(s)
		if !ok {
			return "", false
		}
		suffix, _ := many(production(func(s *scanner) (string, bool) {
			if _, ok := exact(".")(s); !ok {
				return "", false
			}
			name, ok := identifier("OPTION NAME")(s)
			return "." + name, ok
		}))(s)
		for _, part := range suffix {
			head += part
		}
		return head, true
	})

	assignment := production(func(s *scanner) (*info.Option, bool) {
		name, ok := spaced(optionName)(s)
		if !ok {
			return nil, false
		}
		if _, ok = symbol("=")(s); !ok {
			return nil, false
		}
		value, ok := spaced(constantValue)(s)
		if !ok {
			return nil, false
		}
		return &info.Option{Name: name, Value: value.value, Constant: value.kind}, true
	})

	inlineOptions := maybe(between(symbol("["), separated(assignment, symbol(",")), symbol("]")))

	g.syntax = production(func(s *scanner) (*info.Syntax, bool) {
		if _, ok := kw("syntax")(s); !ok {
			return nil, false
		}
		if _, ok := symbol("=")(s); !ok {
			return nil, false
		}
		s.skipSpaces()
		start := s.pos
		value, ok := stringLiteral(s)
		if !ok {
			return nil, false
		}
		if value != "proto3" {
			s.pos = start
			s.fail(`"proto3"`)
			return nil, false
		}
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return &info.Syntax{Value: value}, true
	})

	g.imports = production(func(s *scanner) (*info.Import, bool) {
		if _, ok := kw("import")(s); !ok {
			return nil, false
		}
		modifier, _ := maybe(choice(kw("weak"), kw("public")))(s)
		path, ok := spaced(stringLiteral)(s)
		if !ok {
			return nil, false
		}
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return &info.Import{Value: path, IsPublic: modifier == "public", IsWeak: modifier == "weak"}, true
	})

	g.pkg = production(func(s *scanner) (*info.Package, bool) {
		if _, ok := kw("package")(s); !ok {
			return nil, false
		}
		name, ok := spaced(fullIdentifier("PACKAGE NAME"))(s)
		if !ok {
			return nil, false
		}
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return &info.Package{Value: name}, true
	})

	g.option = production(func(s *scanner) (*info.Option, bool) {
		if _, ok := kw("option")(s); !ok {
			return nil, false
		}
		option, ok := assignment(s)
		if !ok {
			return nil, false
		}
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return option, true
	})

	fieldBody := func(s *scanner, field *info.Field) bool {
		var ok bool
		if field.Type, ok = fieldType(s); !ok {
			return false
		}
		if field.Name, ok = spaced(identifier("FIELD NAME"))(s); !ok {
			return false
		}
		if _, ok = symbol("=")(s); !ok {
			return false
		}
		if field.Index, ok = fieldNumber(s); !ok {
			return false
		}
		field.Options, _ = inlineOptions(s)
		_, ok = symbol(";")(s)
		return ok
	}

	g.field = production(func(s *scanner) (*info.Field, bool) {
		field := &info.Field{}
		field.Repeated, _ = present(kw("repeated"))(s)
		if !fieldBody(s, field) {
			return nil, false
		}
		return field, true
	})

	oneofField := production(func(s *scanner) (*info.Field, bool) {
		field := &info.Field{}
		if !fieldBody(s, field) {
			return nil, false
		}
		return field, true
	})

	g.oneof = production(func(s *scanner) (*info.Oneof, bool) {
		if _, ok := kw("oneof")(s); !ok {
			return nil, false
		}
		name, ok := spaced(identifier("ONEOF NAME"))(s)
		if !ok {
			return nil, false
		}
		items, ok := block(s, node(g.option), node(oneofField), emptyStatement)
		if !ok {
			return nil, false
		}
		return newOneof(name, items), true
	})

	g.mapField = production(func(s *scanner) (*info.Map, bool) {
		if _, ok := kw("map")(s); !ok {
			return nil, false
		}
		if _, ok := symbol("<")(s); !ok {
			return nil, false
		}
		result := &info.Map{}
		var ok bool
		if result.KeyType, ok = spaced(keywords(keyTypes...))(s); !ok {
			return nil, false
		}
		if _, ok = symbol(",")(s); !ok {
			return nil, false
		}
		if result.Type, ok = fieldType(s); !ok {
			return nil, false
		}
		if _, ok = symbol(">")(s); !ok {
			return nil, false
		}
		if result.Name, ok = spaced(identifier("MAP NAME"))(s); !ok {
			return nil, false
		}
		if _, ok = symbol("=")(s); !ok {
			return nil, false
		}
		if result.Index, ok = fieldNumber(s); !ok {
			return nil, false
		}
		result.Options, _ = inlineOptions(s)
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return result, true
	})

	g.rangeDef = production(func(s *scanner) (*info.Range, bool) {
		from, ok := fieldNumber(s)
		if !ok {
			return nil, false
		}
		result := &info.Range{From: from, To: from}
		upper := production(func(s *scanner) (*info.Range, bool) {
			if _, ok := kw("to")(s); !ok {
				return nil, false
			}
			if _, ok := kw("max")(s); ok {
				return &info.Range{From: from, To: info.MaxFieldNumber, Max: true}, true
			}
			to, ok := fieldNumber(s)
			if !ok {
				return nil, false
			}
			return &info.Range{From: from, To: to}, true
		})
		if bounded, ok := upper(s); ok {
			result = bounded
		}
		return result, true
	})

	quotedName := production(func(s *scanner) (string, bool) {
		s.skipSpaces()
		quote := s.peek()
		if quote != '"' && quote != '\'' {
			s.fail("RESERVED NAME")
			return "", false
		}
		s.pos++
		name, ok := identifier("FIELD NAME")(s)
		if !ok {
			return "", false
		}
		if _, ok = exact(string(quote))(s); !ok {
			return "", false
		}
		return name, true
	})

	reservedRanges := production(func(s *scanner) (*info.Reserved, bool) {
		if _, ok := kw("reserved")(s); !ok {
			return nil, false
		}
		ranges, ok := separated(g.rangeDef, symbol(","))(s)
		if !ok {
			return nil, false
		}
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return &info.Reserved{Ranges: ranges}, true
	})

	reservedNames := production(func(s *scanner) (*info.Reserved, bool) {
		if _, ok := kw("reserved")(s); !ok {
			return nil, false
		}
		names, ok := separated(quotedName, symbol(","))(s)
		if !ok {
			return nil, false
		}
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return &info.Reserved{Names: names}, true
	})

	g.reserved = choice(reservedRanges, reservedNames)

	g.value = production(func(s *scanner) (*info.Value, bool) {
		name, ok := spaced(identifier("ENUM VALUE NAME"))(s)
		if !ok {
			return nil, false
		}
		if _, ok = symbol("=")(s); !ok {
			return nil, false
		}
		negative, _ := present(symbol("-"))(s)
		s.skipSpaces()
		text, ok := intLiteral(s)
		if !ok {
			return nil, false
		}
		if negative {
			text = "-" + text
		}
		number, err := info.ParseInt(text)
		if err != nil {
			s.fail("ENUM VALUE")
			return nil, false
		}
		options, _ := inlineOptions(s)
		if _, ok = symbol(";")(s); !ok {
			return nil, false
		}
		return &info.Value{Name: name, Number: int(number), Options: options}, true
	})

	g.enum = production(func(s *scanner) (*info.Enum, bool) {
		if _, ok := kw("enum")(s); !ok {
			return nil, false
		}
		name, ok := spaced(identifier("ENUM NAME"))(s)
		if !ok {
			return nil, false
		}
		items, ok := block(s, node(g.option), node(g.value), emptyStatement)
		if !ok {
			return nil, false
		}
		return newEnum(name, items), true
	})

	nestedMessage := lazy(func() rule[*info.Message] { return g.message })

	g.message = production(func(s *scanner) (*info.Message, bool) {
		if _, ok := kw("message")(s); !ok {
			return nil, false
		}
		name, ok := spaced(identifier("MESSAGE NAME"))(s)
		if !ok {
			return nil, false
		}
		items, ok := block(s,
			node(g.option), node(g.enum), node(nestedMessage), node(g.oneof),
			node(g.mapField), node(g.reserved), emptyStatement, node(g.field))
		if !ok {
			return nil, false
		}
		return newMessage(name, items), true
	})

	g.request = production(func(s *scanner) (*info.Request, bool) {
		stream, typeName, ok := streamType(s)
		if !ok {
			return nil, false
		}
		return &info.Request{Stream: stream, Type: typeName}, true
	})

	g.response = production(func(s *scanner) (*info.Response, bool) {
		stream, typeName, ok := streamType(s)
		if !ok {
			return nil, false
		}
		return &info.Response{Stream: stream, Type: typeName}, true
	})

	rpcOptions := choice(
		production(func(s *scanner) ([]*info.Option, bool) {
			items, ok := block(s, node(g.option), emptyStatement)
			if !ok {
				return nil, false
			}
			var options []*info.Option
			for _, item := range items {
				if item != nil && item.Kind() == info.KindOption {
					options = append(options, item.(*info.Option))
				}
			}
			return options, true
		}),
		transform(symbol(";"), func(string) []*info.Option { return nil }),
	)

	g.rpc = production(func(s *scanner) (*info.Rpc, bool) {
		if _, ok := kw("rpc")(s); !ok {
			return nil, false
		}
		result := &info.Rpc{}
		var ok bool
		if result.Name, ok = spaced(identifier("RPC NAME"))(s); !ok {
			return nil, false
		}
		if result.Request, ok = between(symbol("("), g.request, symbol(")"))(s); !ok {
			return nil, false
		}
		if _, ok = kw("returns")(s); !ok {
			return nil, false
		}
		if result.Response, ok = between(symbol("("), g.response, symbol(")"))(s); !ok {
			return nil, false
		}
		if result.Options, ok = rpcOptions(s); !ok {
			return nil, false
		}
		return result, true
	})

	g.service = production(func(s *scanner) (*info.Service, bool) {
		if _, ok := kw("service")(s); !ok {
			return nil, false
		}
		name, ok := spaced(identifier("SERVICE NAME"))(s)
		if !ok {
			return nil, false
		}
		items, ok := block(s, node(g.option), node(g.rpc), emptyStatement)
		if !ok {
			return nil, false
		}
		return newService(name, items), true
	})

	g.file = production(func(s *scanner) (*info.File, bool) {
		syntax, ok := g.syntax(s)
		if !ok {
			return nil, false
		}
		items, _ := many(choice(
			node(g.imports), node(g.pkg), node(g.option),
			node(g.message), node(g.enum), node(g.service), emptyStatement))(s)
		return newFile(syntax, items), true
	})

	return g
}

// streamType parses an rpc parameter: an optional stream modifier and a message type
func streamType(s *scanner) (bool, string, bool) {
	typeName := spaced(typeReference("MESSAGE TYPE"))
	streamed := production(func(s *scanner) (string, bool) {
		if _, ok := kw("stream")(s); !ok {
			return "", false
		}
		return typeName(s)
	})
	if name, ok := streamed(s); ok {
		return true, name, true
	}
	name, ok := typeName(s)
	return false, name, ok
}

// block parses a brace delimited list of items, empty statements yield nil items
func block(s *scanner, items ...rule[info.Node]) ([]info.Node, bool) {
	return between(symbol("{"), many(choice(items...)), symbol("}"))(s)
}

func newFile(syntax *info.Syntax, items []info.Node) *info.File {
	result := &info.File{Syntax: syntax.Value}
	for _, item := range items {
		if item == nil {
			continue
		}
		switch item.Kind() {
		case info.KindImport:
			result.Imports = append(result.Imports, item.(*info.Import))
		case info.KindPackage:
			result.Package = item.(*info.Package).Value
		case info.KindOption:
			result.Options = append(result.Options, item.(*info.Option))
		case info.KindMessage:
			result.Messages = append(result.Messages, item.(*info.Message))
		case info.KindEnum:
			result.Enums = append(result.Enums, item.(*info.Enum))
		case info.KindService:
			result.Services = append(result.Services, item.(*info.Service))
		default:
			unexpected(item, info.KindFile)
		}
	}
	return result
}

func newMessage(name string, items []info.Node) *info.Message {
	result := &info.Message{Name: name}
	for _, item := range items {
		if item == nil {
			continue
		}
		switch item.Kind() {
		case info.KindField:
			result.Fields = append(result.Fields, item.(*info.Field))
		case info.KindEnum:
			result.Enums = append(result.Enums, item.(*info.Enum))
		case info.KindMessage:
			result.Messages = append(result.Messages, item.(*info.Message))
		case info.KindOption:
			result.Options = append(result.Options, item.(*info.Option))
		case info.KindOneof:
			result.Oneofs = append(result.Oneofs, item.(*info.Oneof))
		case info.KindMap:
			result.Maps = append(result.Maps, item.(*info.Map))
		case info.KindReserved:
			result.Reserved = append(result.Reserved, item.(*info.Reserved))
		default:
			unexpected(item, info.KindMessage)
		}
	}
	return result
}

func newEnum(name string, items []info.Node) *info.Enum {
	result := &info.Enum{Name: name}
	for _, item := range items {
		if item == nil {
			continue
		}
		switch item.Kind() {
		case info.KindValue:
			result.Values = append(result.Values, item.(*info.Value))
		case info.KindOption:
			result.Options = append(result.Options, item.(*info.Option))
		default:
			unexpected(item, info.KindEnum)
		}
	}
	return result
}

func newOneof(name string, items []info.Node) *info.Oneof {
	result := &info.Oneof{Name: name}
	for _, item := range items {
		if item == nil {
			continue
		}
		switch item.Kind() {
		case info.KindField:
			result.Fields = append(result.Fields, item.(*info.Field))
		case info.KindOption:
			result.Options = append(result.Options, item.(*info.Option))
		default:
			unexpected(item, info.KindOneof)
		}
	}
	return result
}

func newService(name string, items []info.Node) *info.Service {
	result := &info.Service{Name: name}
	for _, item := range items {
		if item == nil {
			continue
		}
		switch item.Kind() {
		case info.KindRpc:
			result.Rpcs = append(result.Rpcs, item.(*info.Rpc))
		case info.KindOption:
			result.Options = append(result.Options, item.(*info.Option))
		default:
			unexpected(item, info.KindService)
		}
	}
	return result
}

// unexpected signals a grammar construction bug: a block rule produced a node its parent cannot hold
func unexpected(item info.Node, parent info.Kind) {
	panic(fmt.Sprintf("unexpected %v in %v", item.Kind(), parent))
}
