package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/reqdoc/extract"
	"github.com/tsawler/reqdoc/tables"
)

type yamlDocument struct {
	Name     string        `yaml:"document"`
	Format   string        `yaml:"format"`
	Sections []yamlSection `yaml:"sections"`
}

// yamlSection adds rows as ordered mappings; a plain map would sort the
// fields alphabetically.
type yamlSection struct {
	extract.Result `yaml:",inline"`
	Rows           []*yaml.Node `yaml:"rows"`
}

func exportYAML(doc Document, w io.Writer) error {
	out := yamlDocument{
		Name:     doc.Name,
		Format:   formatName(doc),
		Sections: make([]yamlSection, len(doc.Sections)),
	}
	for i, r := range doc.Sections {
		rows := make([]*yaml.Node, len(r.Rows))
		for j, row := range r.Rows {
			rows[j] = rowNode(row)
		}
		out.Sections[i] = yamlSection{Result: r, Rows: rows}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// rowNode builds a mapping with "id" first and the cells in column order.
func rowNode(r tables.Row) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	n.Content = append(n.Content, scalar("id"), scalar(r.ID))
	for _, c := range r.Cells {
		if c.Field == "id" {
			continue
		}
		n.Content = append(n.Content, scalar(c.Field), scalar(c.Value))
	}
	return n
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func formatName(doc Document) string {
	b, _ := doc.Format.MarshalText()
	return string(b)
}
