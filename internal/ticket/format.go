package ticket

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wahlandcase/attuned.contextfinder/internal/models"
)

// WriteJSON writes the result as indented JSON, leaving non-ASCII text as is
func WriteJSON(w io.Writer, result *models.SearchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// WriteYAML writes the result as a YAML document
func WriteYAML(w io.Writer, result *models.SearchResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return err
	}
	return enc.Close()
}
