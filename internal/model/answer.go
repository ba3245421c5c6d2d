package model

// VendorAnswer is one normalized question/answer pair from a vendor source.
type VendorAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SourceShape identifies which of the accepted payload layouts a vendor
// source was decoded from.
type SourceShape string

const (
	ShapeRecordList   SourceShape = "record-list"   // [{"Question": .., "Answer": ..}, ...]
	ShapeSingleRecord SourceShape = "single-record" // {"Question": .., "Answer": ..}
	ShapeAnswerMap    SourceShape = "answer-map"    // {"<question>": "<answer>", ...}
)

// SourceItem is one raw entry of a vendor source after ingestion.
// Problem is set when the entry could not be turned into a VendorAnswer;
// Raw keeps a printable form of the original entry for diagnostics.
type SourceItem struct {
	VendorAnswer
	Raw     string `json:"raw,omitempty"`
	Problem string `json:"problem,omitempty"`
}

// VendorSource is a vendor's answer collection resolved into canonical items.
type VendorSource struct {
	Vendor string       `json:"vendor"`
	Label  string       `json:"label"`
	Shape  SourceShape  `json:"shape"`
	Items  []SourceItem `json:"items"`
}
