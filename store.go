package wallet

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Names of the collections the store manages.
const (
	CollectionAssets  = "assets"
	CollectionDebts   = "debts"
	CollectionRates   = "rates"
	CollectionBackups = "backups"
)

// collections lists every known collection, in the order restore walks them.
var collections = []string{CollectionAssets, CollectionDebts, CollectionRates, CollectionBackups}

// Record is one schema-flexible entry of a collection. The "id" field holds
// the collection-local identifier assigned by the store on first Put.
type Record map[string]any

// ID returns the record id, or 0 when the store has not assigned one yet.
// Ids survive a JSON round-trip as float64 or json.Number, both are accepted.
func (r Record) ID() int64 {
	switch v := r["id"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

// Store is a keyed-collection store persisted as one JSONL file per
// collection under dir. The first line of each file is a header carrying the
// collection's next id, so id assignment stays monotonic across restarts and
// an id is never reused within a collection, even after deletes.
//
// Records are held in memory as raw JSON and decoded on every read, so every
// caller gets its own copy: a snapshot returned by GetAll never reflects
// later writes.
//
// A single record may not exceed maxRecordBytes on disk. Opening a store
// whose file holds a larger line fails with ErrStorageUnavailable rather
// than silently dropping the record.
type Store struct {
	dir string

	mu   sync.Mutex
	cols map[string]*collection
}

type collection struct {
	next int64
	recs map[int64]json.RawMessage
}

// maxRecordBytes bounds one JSONL line. Backup records embed whole
// collections on a single line, so the bound is generous.
const maxRecordBytes = 16 * 1024 * 1024

// fileHeader is the first JSONL line of every collection file.
type fileHeader struct {
	Collection string `json:"collection"`
	Next       int64  `json:"next"`
}

// OpenStore opens the record store rooted at dir, creating the directory and
// any missing collection file on first run. Opening is idempotent:
// re-declaring an existing collection is a no-op and leaves its records
// untouched.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: cannot create wallet directory %q: %v", ErrStorageUnavailable, dir, err)
	}
	s := &Store{dir: dir, cols: make(map[string]*collection, len(collections))}
	for _, name := range collections {
		col, err := s.loadCollection(name)
		if err != nil {
			return nil, err
		}
		s.cols[name] = col
	}
	return s, nil
}

// Dir returns the directory the store persists into.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name+".jsonl") }

func (s *Store) loadCollection(name string) (*collection, error) {
	col := &collection{next: 1, recs: make(map[int64]json.RawMessage)}

	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		// First run for this collection: persist it empty so the schema
		// exists on disk.
		if err := s.writeCollection(name, col); err != nil {
			return nil, err
		}
		return col, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)

	first := true
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if first {
			first = false
			var h fileHeader
			if err := json.Unmarshal(line, &h); err != nil {
				return nil, fmt.Errorf("%w: corrupt header in %q: %v", ErrStorageUnavailable, s.path(name), err)
			}
			if h.Next > 0 {
				col.next = h.Next
			}
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: corrupt record in %q: %v", ErrStorageUnavailable, s.path(name), err)
		}
		id := rec.ID()
		if id <= 0 {
			return nil, fmt.Errorf("%w: record without id in %q", ErrStorageUnavailable, s.path(name))
		}
		col.recs[id] = json.RawMessage(bytes.Clone(line))
		if id >= col.next {
			col.next = id + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrStorageUnavailable, s.path(name), err)
	}
	return col, nil
}

// writeCollection persists a collection state to its file. The content is
// fully written to a temporary file first and moved into place with a rename,
// so a crash mid-write leaves the previous version intact.
func (s *Store) writeCollection(name string, col *collection) error {
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	head, err := json.Marshal(fileHeader{Collection: name, Next: col.next})
	if err != nil {
		tmp.Close()
		return fmt.Errorf("cannot marshal header for %q: %w", name, err)
	}
	w.Write(head)
	w.WriteByte('\n')

	ids := make([]int64, 0, len(col.recs))
	for id := range col.recs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		w.Write(col.recs[id])
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) col(name string) (*collection, error) {
	col, ok := s.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionNotFound, name)
	}
	return col, nil
}

// GetAll returns a snapshot of every record in the collection, ordered by id.
// The records are fresh copies: writes that happen after the call returns are
// not reflected in them.
func (s *Store) GetAll(name string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.col(name)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(col.recs))
	for id := range col.recs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		var rec Record
		if err := json.Unmarshal(col.recs[id], &rec); err != nil {
			return nil, fmt.Errorf("corrupt record %d in %q: %w", id, name, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns a copy of one record by id.
func (s *Store) Get(name string, id int64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.col(name)
	if err != nil {
		return nil, err
	}
	raw, ok := col.recs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q id %d", ErrRecordNotFound, name, id)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("corrupt record %d in %q: %w", id, name, err)
	}
	return rec, nil
}

// Put inserts rec when it carries no id yet, or overwrites the record with
// the same id (last write wins, no merge). It returns the assigned id.
//
// The write is atomic per record: the new collection state is staged and
// persisted before memory is committed, so a failed or interrupted Put leaves
// the prior version of the record intact.
func (s *Store) Put(name string, rec Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.col(name)
	if err != nil {
		return 0, err
	}

	id := rec.ID()
	next := col.next
	if id <= 0 {
		id = next
		next++
	} else if id >= next {
		// Restoring a record with an explicit id moves the counter past it.
		next = id + 1
	}

	line, err := marshalRecord(rec, id)
	if err != nil {
		return 0, err
	}

	staged := &collection{next: next, recs: make(map[int64]json.RawMessage, len(col.recs)+1)}
	maps.Copy(staged.recs, col.recs)
	staged.recs[id] = line
	if err := s.writeCollection(name, staged); err != nil {
		return 0, err
	}
	s.cols[name] = staged
	return id, nil
}

// Delete removes one record. Deleting a missing id reports ErrRecordNotFound;
// the collection is unchanged.
func (s *Store) Delete(name string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.col(name)
	if err != nil {
		return err
	}
	if _, ok := col.recs[id]; !ok {
		return fmt.Errorf("%w: %q id %d", ErrRecordNotFound, name, id)
	}

	staged := &collection{next: col.next, recs: make(map[int64]json.RawMessage, len(col.recs))}
	maps.Copy(staged.recs, col.recs)
	delete(staged.recs, id)
	if err := s.writeCollection(name, staged); err != nil {
		return err
	}
	s.cols[name] = staged
	return nil
}

// DeleteAll drops every collection and recreates them empty. Only the full
// reset path uses it. Id counters restart from 1.
func (s *Store) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range collections {
		if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		col := &collection{next: 1, recs: make(map[int64]json.RawMessage)}
		if err := s.writeCollection(name, col); err != nil {
			return err
		}
		s.cols[name] = col
	}
	return nil
}

// marshalRecord serializes rec with its definitive id set.
func marshalRecord(rec Record, id int64) (json.RawMessage, error) {
	out := make(Record, len(rec)+1)
	maps.Copy(out, rec)
	out["id"] = id
	line, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal record: %w", err)
	}
	return line, nil
}

// toRecord converts a typed value (Asset, Debt, Rate, Backup) into a store
// record through its JSON form.
func toRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("cannot convert to record: %w", err)
	}
	return rec, nil
}

// fromRecord decodes a store record into a typed value.
func fromRecord(rec Record, v any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cannot marshal record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cannot decode record: %w", err)
	}
	return nil
}

// toRecords converts a slice of typed values into store records.
func toRecords[T any](items []T) ([]Record, error) {
	recs := make([]Record, 0, len(items))
	for _, item := range items {
		rec, err := toRecord(item)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// decodeAll reads a whole collection into typed values.
func decodeAll[T any](s *Store, name string) ([]T, error) {
	recs, err := s.GetAll(name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := fromRecord(rec, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
