package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered file in the output manifest.
type ManifestEntry struct {
	Source string `json:"source"`
	Image  string `json:"image,omitempty"`
	Points int    `json:"points"`
	Error  string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json next to the rendered previews.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Source: r.Path,
			Points: r.Points,
			Error:  r.Error,
		}
		if r.Success {
			entries[i].Image = OutputName(r.Path)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
