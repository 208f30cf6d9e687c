package wikipedia

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrTableNotFound reports that no ranking table matched the target heading.
// Either the dataset is gone or the page structure changed; the run aborts.
var ErrTableNotFound = errors.New("target table not found")

// locateTable returns the first wikitable whose nearest preceding level-2
// heading contains the target label, in document order.
func locateTable(doc *goquery.Document, heading string) (*goquery.Selection, error) {
	var table *goquery.Selection
	lastHeading := ""

	doc.Find("h2, table.wikitable").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Is("h2") {
			lastHeading = s.Text()
			return true
		}
		if strings.Contains(lastHeading, heading) {
			table = s
			return false
		}
		return true
	})

	if table == nil {
		return nil, fmt.Errorf("%w: no wikitable under a %q heading", ErrTableNotFound, heading)
	}
	return table, nil
}
