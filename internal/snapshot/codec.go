// Package snapshot implements the newline-delimited record codec of
// spec.md §4.15: one or more header records followed by per-entity
// component records, reusing internal/prefab's Record/Document shape
// for the entity portion since a snapshot is exactly that plus global
// headers (clock, tick, next-id).
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"sort"

	"ownworld/internal/errs"
	"ownworld/internal/prefab"
)

// Header is one `{"header": name, "value": ...}` record.
type Header struct {
	Name  string          `json:"header"`
	Value json.RawMessage `json:"value"`
}

type headerLine struct {
	Name string          `json:"header"`
	Val  json.RawMessage `json:"value"`
}

type probeLine struct {
	Header *string `json:"header"`
	ID     *uint64 `json:"id"`
}

// Encode writes headers in the given order followed by doc's entity
// records sorted by id, one JSON object per line. Sorting makes a
// write a stable fixed point: two snapshots of the same state encode
// identically byte-for-byte (spec.md §8 round-trip law).
func Encode(headers []Header, doc prefab.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, h := range headers {
		if err := enc.Encode(headerLine{Name: h.Name, Val: h.Value}); err != nil {
			return nil, err
		}
	}

	records := append([]prefab.Record(nil), doc.Records...)
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Decode reads a header/entity-record stream in any order, rejecting
// duplicate entity ids (spec.md §6: "reader ... must reject
// conflicting ids"). Unknown JSON fields are tolerated since each line
// decodes straight into Header or prefab.Record.
func Decode(data []byte) ([]Header, prefab.Document, error) {
	var headers []Header
	seen := make(map[uint64]struct{})
	doc := prefab.Document{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var probe probeLine
		if err := json.Unmarshal(line, &probe); err != nil {
			return nil, prefab.Document{}, errs.InvalidStatef("snapshot: malformed record: %v", err)
		}
		if probe.Header != nil {
			var hl headerLine
			if err := json.Unmarshal(line, &hl); err != nil {
				return nil, prefab.Document{}, errs.InvalidStatef("snapshot: malformed header: %v", err)
			}
			headers = append(headers, Header{Name: hl.Name, Value: hl.Val})
			continue
		}
		if probe.ID == nil {
			return nil, prefab.Document{}, errs.InvalidStatef("snapshot: record has neither header nor id")
		}
		if _, dup := seen[*probe.ID]; dup {
			return nil, prefab.Document{}, errs.Conflictf("snapshot: duplicate entity id %d", *probe.ID)
		}
		seen[*probe.ID] = struct{}{}
		var rec prefab.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, prefab.Document{}, errs.InvalidStatef("snapshot: malformed entity record: %v", err)
		}
		doc.Records = append(doc.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, prefab.Document{}, err
	}
	return headers, doc, nil
}
