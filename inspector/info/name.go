package info

import "strings"

// Qualify joins qualifier and name with a dot, an empty qualifier yields name
func Qualify(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

// Declarations returns qualified names of the given enums and messages, including every
// nested declaration. For each message nested enums and messages come before the message itself.
func Declarations(qualifier string, enums []*Enum, messages []*Message) []string {
	var result []string
	for _, e := range enums {
		result = append(result, Qualify(qualifier, e.Name))
	}
	for _, m := range messages {
		result = appendMessageDeclarations(result, qualifier, m)
	}
	return result
}

func appendMessageDeclarations(result []string, qualifier string, m *Message) []string {
	nested := Qualify(qualifier, m.Name)
	for _, e := range m.Enums {
		result = append(result, Qualify(nested, e.Name))
	}
	for _, child := range m.Messages {
		result = appendMessageDeclarations(result, nested, child)
	}
	return append(result, nested)
}

// References returns candidate qualified names for every non scalar type referenced by
// fields, oneof fields and map values of messages (recursively) and by service rpcs.
// The result may contain duplicates.
func References(pkg string, messages []*Message, services []*Service) []string {
	var result []string
	for _, m := range messages {
		result = appendMessageReferences(result, Qualify(pkg, m.Name), m)
	}
	for _, s := range services {
		for _, rpc := range s.Rpcs {
			if rpc.Request != nil {
				result = append(result, Candidates(pkg, rpc.Request.Type)...)
			}
			if rpc.Response != nil {
				result = append(result, Candidates(pkg, rpc.Response.Type)...)
			}
		}
	}
	return result
}

func appendMessageReferences(result []string, scope string, m *Message) []string {
	for _, f := range m.Fields {
		result = append(result, Candidates(scope, f.Type)...)
	}
	for _, o := range m.Oneofs {
		for _, f := range o.Fields {
			result = append(result, Candidates(scope, f.Type)...)
		}
	}
	for _, mp := range m.Maps {
		result = append(result, Candidates(scope, mp.Type)...)
	}
	for _, child := range m.Messages {
		result = appendMessageReferences(result, Qualify(scope, child.Name), child)
	}
	return result
}

// Candidates returns the qualified names a type reference may resolve to from within
// qualifier. A dotted reference is used verbatim, without its leading absolute dot.
// A bare reference expands outward: qualifier.name, then the qualifier with its last
// segment stripped, down to the root segment. Scalar types yield no candidates.
func Candidates(qualifier, typeName string) []string {
	if typeName == "" || IsScalar(typeName) {
		return nil
	}
	if strings.Contains(typeName, ".") {
		return []string{strings.TrimPrefix(typeName, ".")}
	}
	var result []string
	current := qualifier
	for {
		result = append(result, Qualify(current, typeName))
		index := strings.LastIndex(current, ".")
		if index < 0 {
			break
		}
		current = current[:index]
	}
	return result
}
