package io

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/table"
)

// Kind identifies the shape of a decoded document.
type Kind int

const (
	KindRecords Kind = iota + 1
	KindGrid
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRecords:
		return "records"
	case KindGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// Document is a decoded table document.
type Document struct {
	Kind    Kind
	Titles  []string
	Records []table.Record // set when Kind is KindRecords
	Rows    [][]string     // set when Kind is KindGrid
}

// Table converts the document with its adapter: [table.FromRecords] for
// records, [table.FromGrid] for grids.
func (d Document) Table() (table.Table, error) {
	switch d.Kind {
	case KindRecords:
		return table.FromRecords(d.Records, d.Titles...)
	case KindGrid:
		return table.FromGrid(d.Rows, d.Titles)
	default:
		return table.Table{}, errors.New(errors.ErrCodeEmptyInput, "document has no records or rows")
	}
}

// ReadDocument decodes a JSON or YAML document from r.
// ReadDocument does not close r.
func ReadDocument(r io.Reader) (Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return Document{}, errors.New(errors.ErrCodeEmptyInput, "empty document")
		}
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}
	node := resolve(&root)
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = resolve(node.Content[0])
	}

	switch node.Kind {
	case yaml.SequenceNode:
		return decodeList(node)
	case yaml.MappingNode:
		return decodeObject(node)
	default:
		return Document{}, invalid(node, "document must be a list or an object")
	}
}

// ImportFile reads the document at path.
func ImportFile(path string) (Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// decodeList handles a top-level list of records or of rows.
func decodeList(node *yaml.Node) (Document, error) {
	if len(node.Content) == 0 {
		return Document{}, errors.New(errors.ErrCodeEmptyInput, "document has no rows")
	}
	switch resolve(node.Content[0]).Kind {
	case yaml.MappingNode:
		records, err := decodeRecords(node)
		return Document{Kind: KindRecords, Records: records}, err
	case yaml.SequenceNode:
		rows, err := decodeRows(node)
		return Document{Kind: KindGrid, Rows: rows}, err
	default:
		return Document{}, invalid(node.Content[0], "list items must be objects or lists")
	}
}

// decodeObject handles {titles, records} and {titles, rows}.
func decodeObject(node *yaml.Node) (Document, error) {
	var doc Document
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, resolve(node.Content[i+1])
		var err error
		switch key {
		case "titles":
			doc.Titles, err = decodeRow(val)
		case "records":
			doc.Kind = KindRecords
			doc.Records, err = decodeRecords(val)
		case "rows":
			doc.Kind = KindGrid
			doc.Rows, err = decodeRows(val)
		default:
			err = invalid(node.Content[i], fmt.Sprintf("unknown key %q", key))
		}
		if err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

func decodeRecords(node *yaml.Node) ([]table.Record, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(node, "records must be a list")
	}
	records := make([]table.Record, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			return nil, invalid(item, "record must be an object")
		}
		rec := make(table.Record, 0, len(item.Content)/2)
		seen := make(map[string]bool, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key := item.Content[i].Value
			if seen[key] {
				return nil, invalid(item.Content[i], fmt.Sprintf("duplicate key %q", key))
			}
			seen[key] = true
			val, err := cell(item.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec = append(rec, table.Field{Key: key, Value: val})
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRows(node *yaml.Node) ([][]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(node, "rows must be a list")
	}
	rows := make([][]string, 0, len(node.Content))
	for _, item := range node.Content {
		row, err := decodeRow(resolve(item))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(node, "row must be a list")
	}
	row := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		val, err := cell(item)
		if err != nil {
			return nil, err
		}
		row = append(row, val)
	}
	return row, nil
}

// cell returns the text of a scalar node.
func cell(node *yaml.Node) (string, error) {
	node = resolve(node)
	if node.Kind != yaml.ScalarNode {
		return "", invalid(node, "cell must be a scalar")
	}
	if node.ShortTag() == "!!null" {
		return "", nil
	}
	return node.Value, nil
}

// resolve follows alias nodes to their anchors.
func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func invalid(node *yaml.Node, msg string) error {
	return errors.New(errors.ErrCodeInvalidInput, "line %d, column %d: %s", node.Line, node.Column, msg)
}
