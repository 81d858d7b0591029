package itinerary

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Export writes the itinerary as indented JSON and returns the filename it
// was written to. An empty filename gets a generated one derived from the
// destination.
func Export(it *Itinerary, filename string) (string, error) {
	if it == nil {
		return "", fmt.Errorf("nil itinerary")
	}
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.json", slugify(it.Destination), uuid.NewString())
	}
	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal itinerary: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
