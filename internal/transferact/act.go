package transferact

import "time"

// ActItem is one equipment line of the act table
type ActItem struct {
	Name string
	Unit string
	Qty  int
}

// Act is the content of a transfer-and-acceptance document
type Act struct {
	Date  time.Time
	From  string
	To    string
	Items []ActItem
	Note  string
}

// Renderer serializes an act into a downloadable document.
// Implementations hide the concrete document library from importers.
type Renderer interface {
	Render(act Act) ([]byte, error)
}
