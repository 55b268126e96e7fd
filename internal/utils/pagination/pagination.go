package pagination

// Page describes one requested page of results. Numbers are 1-indexed.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageCount returns the number of pages needed to hold total items.
// An empty result set has zero pages, not one.
func PageCount(total, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Resolve pairs optional page/pageSize parameters into a Page. Partial
// parameters (only one of the two present) are treated as no pagination.
func Resolve(page, pageSize *int) *Page {
	if page == nil || pageSize == nil {
		return nil
	}
	return &Page{Number: *page, Size: *pageSize}
}
