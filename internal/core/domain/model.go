package domain

// RankedEntry is a word together with its occurrence count.
type RankedEntry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopList holds ranked entries sorted by count descending.
// Equal counts keep the order in which the words were first seen.
type TopList []RankedEntry

// Words returns the words of the list in rank order.
func (tl TopList) Words() []string {
	words := make([]string, len(tl))
	for i, e := range tl {
		words[i] = e.Word
	}
	return words
}

// FileResult is the outcome of processing a single input file.
type FileResult struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Tokens   int    `json:"tokens"`
	Bytes    int64  `json:"bytes"`
	Encoding string `json:"encoding,omitempty"`
	Err      error  `json:"-"`
}

// OK reports whether the file was processed successfully.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// ErrMessage returns the error text, or an empty string for a successful result.
func (r FileResult) ErrMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
