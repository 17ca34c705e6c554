package proto_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/protoscope/inspector/info"
	"github.com/viant/protoscope/inspector/proto"
	"gopkg.in/yaml.v3"
)

type nodeTestCase struct {
	description string
	kind        info.Kind
	src         string
	expectYaml  string
}

func TestParseNode(t *testing.T) {
	var testCases = []nodeTestCase{
		{
			description: "syntax",
			kind:        info.KindSyntax,
			src:         `syntax = "proto3";`,
			expectYaml:  `value: proto3`,
		},
		{
			description: "public import",
			kind:        info.KindImport,
			src:         `import public "other.proto";`,
			expectYaml: `
value: other.proto
ispublic: true
isweak: false`,
		},
		{
			description: "weak import",
			kind:        info.KindImport,
			src:         `import weak "legacy.proto";`,
			expectYaml: `
value: legacy.proto
isweak: true`,
		},
		{
			description: "package",
			kind:        info.KindPackage,
			src:         `package foo.bar;`,
			expectYaml:  `value: foo.bar`,
		},
		{
			description: "option",
			kind:        info.KindOption,
			src:         `option java_package = "com.example.foo";`,
			expectYaml: `
name: java_package
value: com.example.foo
constant: string`,
		},
		{
			description: "dotted field type",
			kind:        info.KindField,
			src:         `foo.bar nested_message = 2;`,
			expectYaml: `
type: foo.bar
name: nested_message
index: 2`,
		},
		{
			description: "repeated field with options",
			kind:        info.KindField,
			src:         `repeated int32 samples = 4 [packed=true];`,
			expectYaml: `
repeated: true
type: int32
name: samples
index: 4
options:
  - name: packed
    value: "true"
    constant: bool`,
		},
		{
			description: "absolute field type",
			kind:        info.KindField,
			src:         `.google.protobuf.Timestamp created = 0x10 [deprecated = true, (acme.v) = -1];`,
			expectYaml: `
type: .google.protobuf.Timestamp
name: created
index: 16
options:
  - name: deprecated
    value: "true"
    constant: bool
  - name: (acme.v)
    value: "-1"
    constant: int`,
		},
		{
			description: "scalar prefix is a message type",
			kind:        info.KindField,
			src:         `int32x count = 1;`,
			expectYaml: `
type: int32x
name: count
index: 1`,
		},
		{
			description: "oneof",
			kind:        info.KindOneof,
			src: `
        oneof foo {
            string name = 4;
            SubMessage sub_message = 9;
        }`,
			expectYaml: `
name: foo
fields:
  - type: string
    name: name
    index: 4
  - type: SubMessage
    name: sub_message
    index: 9`,
		},
		{
			description: "map",
			kind:        info.KindMap,
			src:         `map<string, Project> projects = 3;`,
			expectYaml: `
name: projects
keytype: string
type: Project
index: 3`,
		},
		{
			description: "reserved ranges",
			kind:        info.KindReserved,
			src:         `reserved 2, 15, 9 to 11;`,
			expectYaml: `
ranges:
  - from: 2
    to: 2
  - from: 15
    to: 15
  - from: 9
    to: 11`,
		},
		{
			description: "reserved up to max",
			kind:        info.KindReserved,
			src:         `reserved 1000 to max;`,
			expectYaml: `
ranges:
  - from: 1000
    to: 536870911
    max: true`,
		},
		{
			description: "reserved names",
			kind:        info.KindReserved,
			src:         `reserved "foo", 'bar';`,
			expectYaml: `
names: [foo, bar]`,
		},
		{
			description: "range",
			kind:        info.KindRange,
			src:         `9 to 11`,
			expectYaml: `
from: 9
to: 11`,
		},
		{
			description: "enum value",
			kind:        info.KindValue,
			src:         `NEGATIVE = -0x10;`,
			expectYaml: `
name: NEGATIVE
number: -16`,
		},
		{
			description: "enum",
			kind:        info.KindEnum,
			src: `
        enum EnumAllowingAlias {
            option allow_alias = true;
            UNKNOWN = 0;
            STARTED = 1;
            RUNNING = 2 [(custom_option) = "hello world"];
        }`,
			expectYaml: `
name: EnumAllowingAlias
values:
  - name: UNKNOWN
    number: 0
  - name: STARTED
    number: 1
  - name: RUNNING
    number: 2
    options:
      - name: (custom_option)
        value: hello world
        constant: string
options:
  - name: allow_alias
    value: "true"
    constant: bool`,
		},
		{
			description: "nested message with map",
			kind:        info.KindMessage,
			src: `
        message Outer {
            option (my_option).a = true;
            message Inner {
                int64 ival = 1;
            }
            map<int32, string> my_map = 2;
        }`,
			expectYaml: `
name: Outer
maps:
  - name: my_map
    keytype: int32
    type: string
    index: 2
messages:
  - name: Inner
    fields:
      - type: int64
        name: ival
        index: 1
options:
  - name: (my_option).a
    value: "true"
    constant: bool`,
		},
		{
			description: "message body keywords",
			kind:        info.KindMessage,
			src: `
        message Account {
            option deprecated = 5;
            ;
            reserved 3, 4;
            reserved "legacy";
            enum State { ACTIVE = 0; }
            oneof contact {
                option (one) = 1;
                string email = 1;
                Phone phone = 2;
            }
            repeated State history = 5;
        }`,
			expectYaml: `
name: Account
reserved:
  - ranges:
      - from: 3
        to: 3
      - from: 4
        to: 4
  - names: [legacy]
fields:
  - repeated: true
    type: State
    name: history
    index: 5
oneofs:
  - name: contact
    fields:
      - type: string
        name: email
        index: 1
      - type: Phone
        name: phone
        index: 2
    options:
      - name: (one)
        value: "1"
        constant: int
enums:
  - name: State
    values:
      - name: ACTIVE
        number: 0
options:
  - name: deprecated
    value: "5"
    constant: int`,
		},
		{
			description: "request stream",
			kind:        info.KindRequest,
			src:         `stream acme.Chunk`,
			expectYaml: `
stream: true
type: acme.Chunk`,
		},
		{
			description: "response",
			kind:        info.KindResponse,
			src:         `streamed`,
			expectYaml:  `type: streamed`,
		},
		{
			description: "rpc with options",
			kind:        info.KindRpc,
			src: `rpc Upload (stream Chunk) returns (stream Ack) {
                option (http) = "post";
            }`,
			expectYaml: `
name: Upload
request:
  stream: true
  type: Chunk
response:
  stream: true
  type: Ack
options:
  - name: (http)
    value: post
    constant: string`,
		},
		{
			description: "service",
			kind:        info.KindService,
			src: `
        service SearchService {
            option (scope) = PUBLIC;
            rpc Search (SearchRequest) returns (SearchResponse);
        }`,
			expectYaml: `
name: SearchService
rpcs:
  - name: Search
    request:
      type: SearchRequest
    response:
      type: SearchResponse
options:
  - name: (scope)
    value: PUBLIC
    constant: identifier`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			expect := newNode(tc.kind)
			if !assert.NoError(t, yaml.Unmarshal([]byte(tc.expectYaml), expect)) {
				return
			}
			actual, err := proto.ParseNode(tc.kind, tc.src)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.kind, actual.Kind())
			if !assert.EqualValues(t, expect, actual) {
				data, _ := yaml.Marshal(actual)
				fmt.Println("ACTUAL:", string(data))
			}
		})
	}
}

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		src         string
		expectYaml  string
	}{
		{
			description: "basic",
			src:         `syntax = "proto3"; message Person { string name = 1; }`,
			expectYaml: `
syntax: proto3
messages:
  - name: Person
    fields:
      - type: string
        name: name
        index: 1`,
		},
		{
			description: "full file",
			src: `
        syntax = "proto3";
        import public "other.proto";
        option java_package = "com.example.foo";
        enum EnumAllowingAlias {
            option allow_alias = true;
            UNKNOWN = 0;
            STARTED = 1;
            RUNNING = 2 [(custom_option) = "hello world"];
        }
        message outer {
            option (my_option).a = true;
            message inner {
                int64 ival = 1;
            }
            repeated inner inner_message = 2;
            EnumAllowingAlias enum_field =3;
            map<int32, string> my_map = 4;
        }`,
			expectYaml: `
syntax: proto3
imports:
  - value: other.proto
    ispublic: true
options:
  - name: java_package
    value: com.example.foo
    constant: string
enums:
  - name: EnumAllowingAlias
    values:
      - name: UNKNOWN
        number: 0
      - name: STARTED
        number: 1
      - name: RUNNING
        number: 2
        options:
          - name: (custom_option)
            value: hello world
            constant: string
    options:
      - name: allow_alias
        value: "true"
        constant: bool
messages:
  - name: outer
    fields:
      - repeated: true
        type: inner
        name: inner_message
        index: 2
      - type: EnumAllowingAlias
        name: enum_field
        index: 3
    maps:
      - name: my_map
        keytype: int32
        type: string
        index: 4
    messages:
      - name: inner
        fields:
          - type: int64
            name: ival
            index: 1
    options:
      - name: (my_option).a
        value: "true"
        constant: bool`,
		},
		{
			description: "comments, services and the last package",
			src: `// header
syntax = "proto3"; /* block
comment */
package first;
package acme.search; ;
service Search {
  rpc Find (Query) returns (stream .acme.Hit); // trailing
}`,
			expectYaml: `
syntax: proto3
package: acme.search
services:
  - name: Search
    rpcs:
      - name: Find
        request:
          type: Query
        response:
          stream: true
          type: .acme.Hit`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			expect := &info.File{}
			if !assert.NoError(t, yaml.Unmarshal([]byte(tc.expectYaml), expect)) {
				return
			}
			actual, err := proto.Parse([]byte(tc.src))
			if !assert.NoError(t, err) {
				return
			}
			if !assert.EqualValues(t, expect, actual) {
				data, _ := yaml.Marshal(actual)
				fmt.Println("ACTUAL:", string(data))
			}
		})
	}
}

func newNode(kind info.Kind) info.Node {
	switch kind {
	case info.KindFile:
		return &info.File{}
	case info.KindSyntax:
		return &info.Syntax{}
	case info.KindImport:
		return &info.Import{}
	case info.KindPackage:
		return &info.Package{}
	case info.KindOption:
		return &info.Option{}
	case info.KindValue:
		return &info.Value{}
	case info.KindEnum:
		return &info.Enum{}
	case info.KindField:
		return &info.Field{}
	case info.KindRange:
		return &info.Range{}
	case info.KindReserved:
		return &info.Reserved{}
	case info.KindOneof:
		return &info.Oneof{}
	case info.KindMap:
		return &info.Map{}
	case info.KindMessage:
		return &info.Message{}
	case info.KindRequest:
		return &info.Request{}
	case info.KindResponse:
		return &info.Response{}
	case info.KindRpc:
		return &info.Rpc{}
	case info.KindService:
		return &info.Service{}
	}
	panic(fmt.Sprintf("unsupported kind: %v", kind))
}
