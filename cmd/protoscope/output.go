package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/viant/protoscope/extractor"
	"github.com/viant/protoscope/inspector/info"
	"gopkg.in/yaml.v3"
)

func writeResult(w io.Writer, result *extractor.Result, format string) error {
	if format == outputTable {
		return writeTable(w, result.Protos)
	}
	return encode(w, result, format)
}

func writeFile(w io.Writer, file *info.File, format string) error {
	if format == outputTable {
		return writeTable(w, []*info.File{file})
	}
	return encode(w, file, format)
}

func encode(w io.Writer, value interface{}, format string) error {
	switch format {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case outputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported output: %s", format)
}

// writeTable lists every declaration of files, nested ones included, with its kind
func writeTable(w io.Writer, files []*info.File) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Package", "Kind", "Name", "Entries"})
	count := 0
	for _, file := range files {
		for _, e := range file.Enums {
			tbl.AppendRow(table.Row{file.Package, info.KindEnum, info.Qualify(file.Package, e.Name), len(e.Values)})
			count++
		}
		for _, m := range file.Messages {
			count += appendMessageRows(tbl, file.Package, file.Package, m)
		}
		for _, s := range file.Services {
			tbl.AppendRow(table.Row{file.Package, info.KindService, info.Qualify(file.Package, s.Name), len(s.Rpcs)})
			count++
		}
	}
	tbl.AppendFooter(table.Row{"", "", fmt.Sprintf("Total: %d", count), ""})
	tbl.Render()
	return nil
}

func appendMessageRows(tbl table.Writer, pkg, qualifier string, m *info.Message) int {
	name := info.Qualify(qualifier, m.Name)
	tbl.AppendRow(table.Row{pkg, info.KindMessage, name, len(m.Fields) + len(m.Maps) + len(m.Oneofs)})
	count := 1
	for _, e := range m.Enums {
		tbl.AppendRow(table.Row{pkg, info.KindEnum, info.Qualify(name, e.Name), len(e.Values)})
		count++
	}
	for _, child := range m.Messages {
		count += appendMessageRows(tbl, pkg, name, child)
	}
	return count
}
