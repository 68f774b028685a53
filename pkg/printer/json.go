package printer

import (
	"encoding/json"
	"io"
	"os"
)

var _ Printer = (*JSONLines)(nil)

// JSONLines implements [Printer] as one JSON object per line.
type JSONLines struct {
	enc *json.Encoder
}

// NewJSONLines writes to w, or os.Stdout when w is nil.
func NewJSONLines(w io.Writer) *JSONLines {
	if w == nil {
		w = os.Stdout
	}
	return &JSONLines{enc: json.NewEncoder(w)}
}

// Listing implements [Printer].
func (j *JSONLines) Listing(l ListingPrice) error {
	return j.enc.Encode(struct {
		Type string `json:"type"`
		ListingPrice
	}{Type: "listing", ListingPrice: l})
}

// Notice implements [Printer].
func (j *JSONLines) Notice(msg string) error {
	return j.enc.Encode(struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{Type: "notice", Message: msg})
}
