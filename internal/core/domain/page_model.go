package domain

// Page selects a window of the dispense history.
type Page struct {
	Number int
	Size   int
}

// NewPage returns a 1-indexed page, defaulting to the first page of 10
// entries for non positive values.
func NewPage(pageNumber, pageSize int) Page {
	pNumber := 1
	if pageNumber > 0 {
		pNumber = pageNumber
	}

	pSize := 10
	if pageSize > 0 {
		pSize = pageSize
	}

	return Page{
		Number: pNumber,
		Size:   pSize,
	}
}

// Offset returns the number of entries preceding the page.
func (p Page) Offset() int {
	return p.Number*p.Size - p.Size
}
