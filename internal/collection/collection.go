// Package collection keeps named schema accumulators that grow as documents
// are added, together with per-path document coverage.
package collection

import (
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/schemamap/pkg/schemamap"
)

// Collection is a named schema accumulator. All methods are safe for
// concurrent use; the mutex serializes access to the shared Schema.
type Collection struct {
	mu sync.Mutex

	name      string
	schema    *schemamap.Schema
	coverage  map[string]*roaring.Bitmap // path -> IDs of documents containing it
	nextDocID uint32
	created   time.Time
	updated   time.Time
}

// AddResult describes the effect of one Add call.
type AddResult struct {
	DocumentsAdded int               `json:"documents_added"`
	NewPaths       []schemamap.Entry `json:"new_paths"`
	TotalPaths     int               `json:"total_paths"`
	TotalDocuments int               `json:"total_documents"`
}

// FieldCoverage is one schema entry with the share of documents containing it.
type FieldCoverage struct {
	Path      string  `json:"path"`
	Type      string  `json:"type"`
	Documents int     `json:"documents"`
	Frequency float64 `json:"frequency"` // 0.0-1.0
}

// Snapshot is a point-in-time copy of a collection.
type Snapshot struct {
	Name      string          `json:"name"`
	Documents int             `json:"documents"`
	Created   time.Time       `json:"created"`
	Updated   time.Time       `json:"updated"`
	Fields    []FieldCoverage `json:"fields"`
}

// New creates an empty collection.
func New(name string) *Collection {
	now := time.Now()
	return &Collection{
		name:     name,
		schema:   schemamap.NewSchema(),
		coverage: make(map[string]*roaring.Bitmap),
		created:  now,
		updated:  now,
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Add maps each document into the collection schema. Paths the collection
// already resolved keep their type; new paths are appended in discovery order.
func (c *Collection) Add(docs ...any) AddResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.schema.Len()
	for _, doc := range docs {
		docID := c.nextDocID
		c.nextDocID++

		schemamap.Map(doc, c.schema)

		// coverage counts the paths of this document alone
		own := schemamap.Map(doc, nil)
		for _, path := range own.Paths() {
			if !c.schema.Has(path) {
				continue
			}
			bm, ok := c.coverage[path]
			if !ok {
				bm = roaring.New()
				c.coverage[path] = bm
			}
			bm.Add(docID)
		}
	}
	if len(docs) > 0 {
		c.updated = time.Now()
	}

	entries := c.schema.Entries()
	return AddResult{
		DocumentsAdded: len(docs),
		NewPaths:       entries[before:],
		TotalPaths:     len(entries),
		TotalDocuments: int(c.nextDocID),
	}
}

// Seed merges a previously saved schema into the collection without counting
// any documents.
func (c *Collection) Seed(saved *schemamap.Schema) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, e := range saved.Entries() {
		if c.schema.Add(e.Path, e.Type) {
			added++
		}
	}
	return added
}

// Schema returns a copy of the accumulated schema.
func (c *Collection) Schema() *schemamap.Schema {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schema.Clone()
}

// Documents returns the number of documents added so far.
func (c *Collection) Documents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.nextDocID)
}

// Snapshot copies the collection, keeping only fields present in at least
// minFrequency of the documents. Seeded fields never seen in a document have
// frequency 0.
func (c *Collection) Snapshot(minFrequency float64) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Name:      c.name,
		Documents: int(c.nextDocID),
		Created:   c.created,
		Updated:   c.updated,
		Fields:    make([]FieldCoverage, 0, c.schema.Len()),
	}

	for _, e := range c.schema.Entries() {
		count := 0
		if bm, ok := c.coverage[e.Path]; ok {
			count = int(bm.GetCardinality())
		}
		freq := 0.0
		if snap.Documents > 0 {
			freq = float64(count) / float64(snap.Documents)
		}
		if freq < minFrequency {
			continue
		}
		snap.Fields = append(snap.Fields, FieldCoverage{
			Path:      e.Path,
			Type:      e.Type,
			Documents: count,
			Frequency: freq,
		})
	}

	return snap
}
