package aws

// pageFunc fetches one page of results. It receives the continuation token
// from the previous page (nil for the first page) and returns the page's
// records plus the next token, nil when the listing is exhausted.
type pageFunc[T any] func(nextToken *string) ([]T, *string, error)

// collectPages drains a paginated listing into a single slice, preserving
// page order. The first failing page aborts the whole collection.
func collectPages[T any](fn pageFunc[T]) ([]T, error) {
	var all []T
	var token *string
	for {
		items, next, err := fn(token)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == nil {
			break
		}
		token = next
	}
	return all, nil
}
