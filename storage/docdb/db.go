// Package docdb is an in-memory document store keyed by ObjectID hex strings.
package docdb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the identifier of every document.
const IDField = "_id"

var ErrNotFound = errors.New("document not found")

// Doc is a JSON object.
type Doc map[string]interface{}

// ID returns the identifier of the document, or "".
func (d Doc) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Str returns the field as a string ("" when missing).
func (d Doc) Str(field string) string {
	switch v := d[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Int returns a numeric field as an int (0 when missing or not a number).
func (d Doc) Int(field string) int {
	switch v := d[field].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

type table struct {
	order []string
	docs  map[string]Doc
}

// DB holds one table per collection. Stored documents are never shared with callers.
type DB struct {
	mutex  sync.RWMutex
	tables map[string]*table
}

func New() *DB {
	return &DB{tables: make(map[string]*table)}
}

// NewID returns a new ObjectID hex string.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// must be called with the write lock held
func (db *DB) table(coll string) *table {
	t, ok := db.tables[coll]
	if !ok {
		t = &table{docs: make(map[string]Doc)}
		db.tables[coll] = t
	}
	return t
}

// Insert stores doc, assigning it a new _id unless it has one.
func (db *DB) Insert(coll string, doc Doc) (Doc, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	doc = clone(doc)
	id := doc.ID()
	if id == "" {
		id = NewID()
		doc[IDField] = id
	}
	t := db.table(coll)
	if _, exists := t.docs[id]; exists {
		return nil, errors.Errorf("%s %s already exists", coll, id)
	}
	t.docs[id] = doc
	t.order = append(t.order, id)
	return clone(doc), nil
}

// Find returns the documents (in insertion order) whose fields equal every value of match.
func (db *DB) Find(coll string, match map[string]string) []Doc {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	docs := []Doc{}
	t, ok := db.tables[coll]
	if !ok {
		return docs
	}
	for _, id := range t.order {
		doc := t.docs[id]
		if matches(doc, match) {
			docs = append(docs, clone(doc))
		}
	}
	return docs
}

func (db *DB) Get(coll, id string) (Doc, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if t, ok := db.tables[coll]; ok {
		if doc, ok := t.docs[id]; ok {
			return clone(doc), nil
		}
	}
	return nil, ErrNotFound
}

// Update sets the fields of patch on the document id. The _id is never changed.
func (db *DB) Update(coll, id string, patch Doc) (Doc, error) {
	return db.Modify(coll, id, func(doc Doc) error {
		for k, v := range clone(patch) {
			if k != IDField {
				doc[k] = v
			}
		}
		return nil
	})
}

// Modify applies fn to the document id atomically. Nothing is stored when fn fails.
func (db *DB) Modify(coll, id string, fn func(doc Doc) error) (Doc, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	t, ok := db.tables[coll]
	if !ok {
		return nil, ErrNotFound
	}
	orig, ok := t.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	doc := clone(orig)
	if err := fn(doc); err != nil {
		return nil, err
	}
	doc[IDField] = id
	t.docs[id] = doc
	return clone(doc), nil
}

func (db *DB) Delete(coll, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	t, ok := db.tables[coll]
	if !ok {
		return ErrNotFound
	}
	if _, ok := t.docs[id]; !ok {
		return ErrNotFound
	}
	delete(t.docs, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Collections returns the sorted names of the non empty collections.
func (db *DB) Collections() []string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	names := make([]string, 0, len(db.tables))
	for name, t := range db.tables {
		if len(t.docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Seed inserts every document of data, keyed by collection.
func (db *DB) Seed(data map[string][]Doc) error {
	colls := make([]string, 0, len(data))
	for coll := range data {
		colls = append(colls, coll)
	}
	sort.Strings(colls)

	for _, coll := range colls {
		for _, doc := range data[coll] {
			if _, err := db.Insert(coll, doc); err != nil {
				return errors.Wrapf(err, "seeding %s", coll)
			}
		}
	}
	return nil
}

func matches(doc Doc, match map[string]string) bool {
	for field, want := range match {
		if doc.Str(field) != want {
			return false
		}
	}
	return true
}

func clone(doc Doc) Doc {
	out := make(Doc, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Doc:
		return clone(val)
	case map[string]interface{}:
		return map[string]interface{}(clone(val))
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
