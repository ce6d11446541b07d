package proposalpdf

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrNilDocument is returned when [Generator.Render] receives no document.
	ErrNilDocument = errors.New("proposalpdf: nil document")

	// ErrRender wraps every failure raised while laying out or encoding a
	// proposal. The underlying cause is preserved in the chain.
	ErrRender = errors.New("proposalpdf: render failed")

	// ErrAsset is returned by asset loaders for unreadable images.
	ErrAsset = errors.New("proposalpdf: unusable header asset")
)
