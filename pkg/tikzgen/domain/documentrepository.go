package domain

type DocumentFilter struct {
	// Caption if non-empty, only returns documents whose caption contains this substring
	Caption string
	// LatestCount if non-zero, only returns the given number of most recent documents
	LatestCount int
}

// DocumentRepository keeps a history of generated documents so that good outputs can be found again
// without burning GPU time on regeneration.
type DocumentRepository interface {
	Store(document *TikzDocument) error
	Find(filter DocumentFilter) ([]*TikzDocument, error)
	RemoveAll() error
}
