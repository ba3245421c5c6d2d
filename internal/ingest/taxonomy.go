package ingest

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"vendor-risk-assessor/internal/logging"
	"vendor-risk-assessor/internal/taxonomy"
)

// Taxonomy field names as they appear in the source documents.
const (
	fieldQuestion    = "Question"
	fieldAnswer      = "Answer"
	fieldCategory    = "Category"
	fieldSubCategory = "Sub Category"
	fieldRiskLevel   = "Risk Level"
	fieldExpected    = "Expected"
)

// LoadTaxonomyFile reads and parses a taxonomy file. Any failure, including
// an empty taxonomy, is returned wrapped; callers abort the run on it.
func LoadTaxonomyFile(path string, logger *slog.Logger) (*taxonomy.Index, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
	}
	idx, err := ParseTaxonomy(data, format, logger)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
	}
	return idx, nil
}

// ParseTaxonomy accepts either form of the taxonomy: a mapping of question
// to entry, or a sequence of entries carrying their own Question field.
// Entries that are not mappings are dropped with a warning; an entry that is
// an empty mapping is dropped silently so its question resolves as unknown.
func ParseTaxonomy(data []byte, format Format, logger *slog.Logger) (*taxonomy.Index, error) {
	logger = logging.OrDiscard(logger)

	root, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, taxonomy.ErrEmptyTaxonomy
	}

	switch root.Kind {
	case yaml.MappingNode:
		keys := make([]string, 0, len(root.Content)/2)
		entries := make(map[string]taxonomy.Entry, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			q, ok := scalarText(deref(root.Content[i]))
			if !ok {
				logger.Warn("taxonomy key is not text, skipping", "key", compact(root.Content[i]))
				continue
			}
			v := deref(root.Content[i+1])
			if v.Kind != yaml.MappingNode {
				logger.Warn("taxonomy entry is not a mapping, skipping",
					"question", q, "kind", kindName(v.Kind))
				continue
			}
			if len(v.Content) == 0 {
				continue
			}
			if _, dup := entries[q]; dup {
				logger.Warn("duplicate taxonomy key, keeping the last definition", "question", q)
			} else {
				keys = append(keys, q)
			}
			e := entryFrom(v)
			e.Question = q
			entries[q] = e
		}
		return taxonomy.NewKeyed(keys, entries)

	case yaml.SequenceNode:
		entries := make([]taxonomy.Entry, 0, len(root.Content))
		for i, item := range root.Content {
			item = deref(item)
			if item.Kind != yaml.MappingNode {
				logger.Warn("taxonomy entry is not a mapping, skipping",
					"position", i, "kind", kindName(item.Kind))
				continue
			}
			e := entryFrom(item)
			if q, ok := field(item, fieldQuestion); ok {
				e.Question, _ = scalarText(q)
			}
			entries = append(entries, e)
		}
		return taxonomy.NewSequence(entries)

	default:
		return nil, fmt.Errorf("%w: taxonomy root is a %s", ErrUnsupportedShape, kindName(root.Kind))
	}
}

// entryFrom reads the control fields of a mapping node. Absent or null
// fields take the same defaults as an unknown question.
func entryFrom(m *yaml.Node) taxonomy.Entry {
	e := taxonomy.DefaultEntry("")
	set := func(key string, dst *string) {
		if n, ok := field(m, key); ok {
			if s, ok := scalarText(n); ok {
				*dst = s
			}
		}
	}
	set(fieldCategory, &e.Category)
	set(fieldSubCategory, &e.SubCategory)
	set(fieldRiskLevel, &e.RiskLevel)
	set(fieldExpected, &e.Expected)
	return e
}
