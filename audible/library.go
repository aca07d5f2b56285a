package audible

import (
	"context"
	"strconv"
)

const apiPrefix = "/1.0"
const libraryPageSize = 50

// Person is an author or narrator of a library item.
type Person struct {
	Name string `json:"name"`
	ASIN string `json:"asin,omitempty"`
}

// LibraryItem is a single audiobook in the user's library.
type LibraryItem struct {
	ASIN             string   `json:"asin"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	Authors          []Person `json:"authors"`
	Narrators        []Person `json:"narrators"`
	ReleaseDate      string   `json:"release_date"`
	PurchaseDate     string   `json:"purchase_date"`
	RuntimeLengthMin int      `json:"runtime_length_min"`
	PercentComplete  float64  `json:"percent_complete"`
	IsFinished       bool     `json:"is_finished"`
}

type libraryResponse struct {
	Items        []LibraryItem `json:"items"`
	TotalResults int           `json:"total_results"`
}

// GetLibraryPage calls Audible's /1.0/library endpoint. It returns one page of the user's
// library, along with the total number of items. Pages start at 1.
func (c Client) GetLibraryPage(ctx context.Context, pageNr int) ([]LibraryItem, int, error) {
	target := c.URL + apiPrefix + "/library?num_results=" + strconv.Itoa(libraryPageSize) + "&page=" + strconv.Itoa(pageNr)
	response, err := call[libraryResponse](ctx, c.Client, target)
	return response.Items, response.TotalResults, err
}

// GetLibrary returns the user's full library, fetching pages until all items are in
func (c Client) GetLibrary(ctx context.Context) ([]LibraryItem, error) {
	items, totalResults, err := c.GetLibraryPage(ctx, 1)
	page := 1

	for err == nil && len(items) < totalResults {
		var tmp []LibraryItem
		page++
		if tmp, _, err = c.GetLibraryPage(ctx, page); err == nil {
			if len(tmp) == 0 {
				break
			}
			items = append(items, tmp...)
		}
	}

	return items, err
}

type libraryItemResponse struct {
	Item LibraryItem `json:"item"`
}

// GetLibraryItem calls Audible's /1.0/library/:asin endpoint. It returns the library
// item for the specified ASIN.
func (c Client) GetLibraryItem(ctx context.Context, asin string) (LibraryItem, error) {
	response, err := call[libraryItemResponse](ctx, c.Client, c.URL+apiPrefix+"/library/"+asin)
	return response.Item, err
}
