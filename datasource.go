package fedsplit

// DataSource is a source of labeled image records. Implementations decode
// one split at a time into memory.
type DataSource interface {
	ToString() string                        // for logging
	Read(kind DatasetKind) (*Dataset, error) // decode a split, preserving record order
}
