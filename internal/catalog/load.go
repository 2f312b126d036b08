package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/halcyonworks/compass/internal/errors"
)

// Load reads a catalog overlay from a JSON file. The overlay replaces the
// built-in tables wholesale and goes through the same validation, so a bad
// overlay fails at startup rather than at scoring time.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("reading catalog overlay %s", path), err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("parsing catalog overlay %s", path), err)
	}

	return New(data)
}
