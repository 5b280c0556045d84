package pdfx

// WordToken is one word on a page together with its bounding box. Coordinates
// are top-origin points: Top grows downward from the top edge of the page, X0
// and X1 are the left and right edges of the word.
type WordToken struct {
	Text   string  `json:"text"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DocumentContent is the extraction output for one PDF document: the per-page
// plain text joined with newlines, and optionally the word tokens of the
// first page for layout-sensitive parsing.
type DocumentContent struct {
	Path  string      `json:"path"`
	Name  string      `json:"name"`
	Pages int         `json:"pages"`
	Text  string      `json:"text"`
	Words []WordToken `json:"words,omitempty"`
}
