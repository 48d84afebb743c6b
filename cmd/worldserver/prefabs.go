package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"ownworld/internal/prefab"
)

// loadPrefabDir reads every *.json file in dir as a prefab.Document and
// merges them into one catalog, the way the teacher's initDB loads its
// whole schema from one embedded string — here spread across one file
// per content pack instead (spec.md §4.6 step 1: "merged from one or
// more documents").
func loadPrefabDir(dir string) (*prefab.Catalog, error) {
	cat := prefab.NewCatalog()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []prefab.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var doc prefab.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := cat.Merge(docs...); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Normalize(); err != nil {
		return nil, err
	}
	return cat, nil
}
