package repo

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/dining-scout/internal/domain"
)

// NewYAMLSource returns a RowSource reading the YAML file at path.
func NewYAMLSource(path string) RowSource {
	return &fileSource{op: "repo.YAMLSource.Rows", path: path, parse: ParseYAML}
}

// yamlDocument accepts either a top-level sequence of venues or a mapping
// with a "venues" key.
type yamlDocument struct {
	Venues []yaml.Node `yaml:"venues"`
}

// ParseYAML reads a sequence of mappings. List values (e.g. disc) are passed
// through as lists. Sequence items that are not mappings are skipped and
// counted.
func ParseYAML(r io.Reader) (domain.RowBatch, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.RowBatch{}, errors.New("yaml: empty document")
		}
		return domain.RowBatch{}, err
	}

	items, err := yamlItems(&root)
	if err != nil {
		return domain.RowBatch{}, err
	}

	var batch domain.RowBatch
	for _, item := range items {
		var row map[string]any
		if item.Kind != yaml.MappingNode || item.Decode(&row) != nil {
			batch.Skipped++
			continue
		}
		batch.Rows = append(batch.Rows, domain.RawRow(row))
	}
	return batch, nil
}

func yamlItems(root *yaml.Node) ([]*yaml.Node, error) {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		doc = doc.Content[0]
	}
	switch doc.Kind {
	case yaml.SequenceNode:
		return doc.Content, nil
	case yaml.MappingNode:
		var wrapped yamlDocument
		if err := doc.Decode(&wrapped); err != nil {
			return nil, err
		}
		if wrapped.Venues == nil {
			return nil, errors.New(`yaml: mapping has no "venues" key`)
		}
		items := make([]*yaml.Node, len(wrapped.Venues))
		for i := range wrapped.Venues {
			items[i] = &wrapped.Venues[i]
		}
		return items, nil
	}
	return nil, fmt.Errorf("yaml: expected a sequence of venues, got node kind %d", doc.Kind)
}
