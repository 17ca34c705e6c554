package extractor

import "github.com/viant/protoscope/inspector/info"

// ReadResult holds a single filtered file with its declared and referenced type names
type ReadResult struct {
	File    *info.File // Filtered copy
	Found   []string   // Qualified names declared by the kept enums and messages
	Missing []string   // Distinct referenced names, from the unfiltered tree, not in Found
}

// Progress accumulates extraction state across files
type Progress struct {
	Protos  []*info.File
	Found   []string
	Missing []string
}

// Read filters the top level declarations of file and computes found and missing names.
// References are collected from the whole file so that a filtered out type still
// contributes its dependencies. file is not modified.
func Read(file *info.File, include, exclude MatchExpression) *ReadResult {
	filtered := file.Filter(func(name string) bool {
		return include.Matches(name) && !exclude.Matches(name)
	})
	found := info.Declarations(file.Package, filtered.Enums, filtered.Messages)
	references := info.References(file.Package, file.Messages, file.Services)
	return &ReadResult{
		File:    filtered,
		Found:   found,
		Missing: except(distinct(references), found),
	}
}

// MergeFiles unions two files of the same package. Enums, messages, options and
// services are deduplicated by name, imports by path; on a clash a wins.
func MergeFiles(a, b *info.File) *info.File {
	return &info.File{
		Syntax:   a.Syntax,
		Package:  a.Package,
		Imports:  distinctBy(concat(a.Imports, b.Imports), func(i *info.Import) string { return i.Value }),
		Enums:    distinctBy(concat(a.Enums, b.Enums), func(e *info.Enum) string { return e.Name }),
		Messages: distinctBy(concat(a.Messages, b.Messages), func(m *info.Message) string { return m.Name }),
		Options:  distinctBy(concat(a.Options, b.Options), func(o *info.Option) string { return o.Name }),
		Services: distinctBy(concat(a.Services, b.Services), func(s *info.Service) string { return s.Name }),
	}
}

// MergeRead merges a per file result into progress; a file left without top level
// enums and messages after filtering contributes nothing
func MergeRead(read *ReadResult, progress *Progress) *Progress {
	if read.File.IsEmpty() {
		return progress
	}
	return Merge(&Progress{
		Protos:  []*info.File{read.File},
		Found:   read.Found,
		Missing: read.Missing,
	}, progress)
}

// Merge combines two progress values into a new one. Files sharing a package are merged
// with MergeFiles; the file list is b's unmatched files, then a's unmatched files, then the
// merged ones. Found is the distinct union with b first, Missing the distinct union minus Found.
func Merge(a, b *Progress) *Progress {
	var merged []*info.File
	packages := map[string]bool{}
	for _, left := range a.Protos {
		for _, right := range b.Protos {
			if left.Package == right.Package {
				merged = append(merged, MergeFiles(left, right))
				packages[left.Package] = true
			}
		}
	}
	var protos []*info.File
	for _, file := range b.Protos {
		if !packages[file.Package] {
			protos = append(protos, file)
		}
	}
	for _, file := range a.Protos {
		if !packages[file.Package] {
			protos = append(protos, file)
		}
	}
	protos = append(protos, merged...)

	found := distinct(concat(b.Found, a.Found))
	return &Progress{
		Protos:  protos,
		Found:   found,
		Missing: except(distinct(concat(b.Missing, a.Missing)), found),
	}
}

func concat[T any](a, b []T) []T {
	result := make([]T, 0, len(a)+len(b))
	result = append(result, a...)
	return append(result, b...)
}

func distinctBy[T any](items []T, key func(T) string) []T {
	var result []T
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, item)
	}
	return result
}

func distinct(items []string) []string {
	return distinctBy(items, func(s string) string { return s })
}

func except(items, excluded []string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, item := range excluded {
		skip[item] = true
	}
	var result []string
	for _, item := range items {
		if !skip[item] {
			result = append(result, item)
		}
	}
	return result
}
