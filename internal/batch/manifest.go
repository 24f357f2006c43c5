package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered shot in the output manifest.
type ManifestEntry struct {
	Name     string     `json:"name"`
	Image    string     `json:"image"`
	Position [3]float32 `json:"position"`
	Front    [3]float32 `json:"front"`
	Seed     uint64     `json:"seed"`
	Picks    []int      `json:"picks,omitempty"`
	Pairs    int        `json:"pairs"`
}

// WriteManifest writes manifest.json for the successfully rendered shots.
// results must be index-aligned with shots, as returned by Run.
func WriteManifest(path string, shots []Shot, results []Result) error {
	entries := make([]ManifestEntry, 0, len(shots))
	for i, s := range shots {
		if i >= len(results) || !results[i].Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:     s.Name,
			Image:    results[i].Image,
			Position: s.Position,
			Front:    s.Front,
			Seed:     s.Seed,
			Picks:    s.Picks,
			Pairs:    results[i].Pairs,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
