// Package view computes the displayed file lists. Everything here is a pure
// function over base collections: search and sort return fresh slices and
// never touch their inputs, so the catalog store's bases stay authoritative.
package view

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nishant0207/online-filesharing/internal/client/models"
)

// collator does locale-aware, case-insensitive filename ordering, matching
// how the listing compares names for users.
var collator = collate.New(language.English, collate.IgnoreCase)

// Search returns the records whose filename contains query as a
// case-insensitive substring. A blank query returns the base unchanged,
// same elements in the same order.
func Search(base []models.FileRecord, query string) []models.FileRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return slices.Clone(base)
	}

	needle := strings.ToLower(query)
	out := make([]models.FileRecord, 0, len(base))
	for _, r := range base {
		if strings.Contains(strings.ToLower(r.Filename), needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortOwned reorders an owned view. SortNewest orders by CreatedAt
// descending and is stable: records with equal timestamps keep their
// relative order. SortAlphabetical collates filenames ascending. Any other
// key leaves the server-determined order alone.
func SortOwned(view []models.FileRecord, key models.SortKey) []models.FileRecord {
	out := slices.Clone(view)
	switch key {
	case models.SortNewest:
		slices.SortStableFunc(out, func(a, b models.FileRecord) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case models.SortAlphabetical:
		slices.SortStableFunc(out, func(a, b models.FileRecord) int {
			return collator.CompareString(a.Filename, b.Filename)
		})
	}
	return out
}

// Derive computes both displayed lists from the base collections. Search
// applies to both; sort applies to the owned view only (the shared view
// keeps the server's order). An empty sort key means "as fetched", which is
// what a caller gets right after a refresh until they re-apply a sort.
func Derive(owned, shared []models.FileRecord, query string, sortKey models.SortKey) (ownedView, sharedView []models.FileRecord) {
	ownedView = Search(owned, query)
	if sortKey != "" {
		ownedView = SortOwned(ownedView, sortKey)
	}
	sharedView = Search(shared, query)
	return ownedView, sharedView
}
