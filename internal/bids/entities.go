package bids

import (
	"path/filepath"
	"strings"
)

// Entities holds the key-value pairs, suffix, and extension parsed from a
// BIDS-style filename such as
// sub-001_model-noddi_desc-aparcaseg_results.tsv.
type Entities struct {
	Keys      map[string]string
	Suffix    string
	Extension string
}

// ParseEntities decomposes a filename into BIDS entities. Parsing is
// tolerant: segments that are not key-value pairs and not the trailing
// suffix are ignored, so unrelated files yield mostly-empty entities
// rather than an error.
func ParseEntities(name string) Entities {
	base := filepath.Base(name)
	ent := Entities{Keys: make(map[string]string)}

	segments := strings.Split(base, "_")
	for i, seg := range segments {
		if i == len(segments)-1 {
			// trailing segment carries suffix and extension
			suffix := seg
			if dot := strings.Index(seg, "."); dot >= 0 {
				suffix = seg[:dot]
				ent.Extension = seg[dot:]
			}
			if !strings.Contains(suffix, "-") {
				ent.Suffix = suffix
				continue
			}
			seg = suffix
		}
		key, value, ok := strings.Cut(seg, "-")
		if !ok || key == "" || value == "" {
			continue
		}
		ent.Keys[key] = value
	}
	return ent
}
