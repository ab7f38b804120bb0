package lookup

import (
	_ "embed"

	"taginput/internal/domain"
)

//go:embed email-options.txt
var builtinCatalog []byte

// DefaultCatalog returns the built-in recipients list
func DefaultCatalog() []domain.Option {
	options, err := ParseCatalog(".txt", builtinCatalog)
	if err != nil {
		// the embedded file is plain text, parsing cannot fail
		panic(err)
	}
	return options
}
