package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"vendor-risk-assessor/internal/model"
)

// VendorID derives the vendor identifier from a source label (file name
// without its extension).
func VendorID(label string) string {
	base := filepath.Base(label)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadVendorFile reads one vendor file and resolves it into a VendorSource.
func LoadVendorFile(path string) (model.VendorSource, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.VendorSource{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.VendorSource{}, err
	}
	label := filepath.Base(path)
	return ParseVendor(data, format, VendorID(label), label)
}

// ParseVendor resolves a vendor payload into canonical items. Three layouts
// are accepted: a sequence of {Question, Answer} records, a single such
// record, or a mapping of question to answer. Items that cannot be read are
// kept with Problem set so the scorer can report and skip them.
func ParseVendor(data []byte, format Format, vendor, label string) (model.VendorSource, error) {
	src := model.VendorSource{Vendor: vendor, Label: label, Items: []model.SourceItem{}}

	root, err := decode(data, format)
	if err != nil {
		return src, err
	}
	if root == nil {
		return src, fmt.Errorf("%w: empty document", ErrUnsupportedShape)
	}

	switch root.Kind {
	case yaml.SequenceNode:
		src.Shape = model.ShapeRecordList
		for _, n := range root.Content {
			src.Items = append(src.Items, listItem(deref(n)))
		}
	case yaml.MappingNode:
		if _, ok := field(root, fieldQuestion); ok {
			src.Shape = model.ShapeSingleRecord
			src.Items = append(src.Items, recordItem(root))
			break
		}
		src.Shape = model.ShapeAnswerMap
		for i := 0; i+1 < len(root.Content); i += 2 {
			src.Items = append(src.Items, mapItem(deref(root.Content[i]), deref(root.Content[i+1])))
		}
	default:
		return src, fmt.Errorf("%w: vendor root is a %s", ErrUnsupportedShape, kindName(root.Kind))
	}
	return src, nil
}

func listItem(n *yaml.Node) model.SourceItem {
	switch n.Kind {
	case yaml.MappingNode:
		return recordItem(n)
	case yaml.ScalarNode:
		// A bare value only carries an answer when it keys into a mapping.
		return model.SourceItem{
			Raw:     compact(n),
			Problem: "bare value has no answer in a sequence source",
		}
	default:
		return model.SourceItem{
			Raw:     compact(n),
			Problem: fmt.Sprintf("unexpected %s item", kindName(n.Kind)),
		}
	}
}

func recordItem(m *yaml.Node) model.SourceItem {
	item := model.SourceItem{Raw: compact(m)}

	q, ok := field(m, fieldQuestion)
	if !ok {
		item.Problem = "record has no Question field"
		return item
	}
	if q.Kind != yaml.ScalarNode || q.ShortTag() != "!!str" {
		item.Problem = "Question is not text"
		return item
	}
	item.Question = q.Value

	if a, ok := field(m, fieldAnswer); ok {
		if a.Kind != yaml.ScalarNode {
			item.Problem = fmt.Sprintf("Answer is a %s, not a scalar", kindName(a.Kind))
			return item
		}
		item.Answer, _ = scalarText(a)
	}
	return item
}

func mapItem(k, v *yaml.Node) model.SourceItem {
	item := model.SourceItem{}
	q, ok := scalarText(k)
	if !ok {
		item.Raw = compact(k)
		item.Problem = "mapping key is not text"
		return item
	}
	item.Question = q
	item.Raw = fmt.Sprintf("%s: %s", compact(k), compact(v))
	if v.Kind != yaml.ScalarNode {
		item.Problem = fmt.Sprintf("answer is a %s, not a scalar", kindName(v.Kind))
		return item
	}
	item.Answer, _ = scalarText(v)
	return item
}
