package entity

import "encoding/base64"

// ElementDescriptor describes one DOM node matched by extract_elements.
// Selector is tag + #id + .classes and is not guaranteed to be unique.
type ElementDescriptor struct {
	Selector    string `json:"selector"`
	Type        string `json:"type"`
	Text        string `json:"text"`
	Placeholder string `json:"placeholder"`
	Name        string `json:"name"`
}

// FieldAssignment is one step of fill_form.
type FieldAssignment struct {
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

type Screenshot struct {
	Path        string
	Format      string
	Width       int
	Height      int
	Data        []byte
	EncodedSize int
}

func (s *Screenshot) DataURL() string {
	return "data:image/" + s.Format + ";base64," + base64.StdEncoding.EncodeToString(s.Data)
}
