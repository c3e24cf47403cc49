package wallet

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// This file implements the portable backup format: a single UTF-8 JSON
// object whose keys are collection names and whose values are arrays of
// records exactly as stored. It should remain human readable and easy to
// carry between installations.

// jbackup is the portable form of a backup: the backup record's own id and
// timestamp are stripped, only collection data travels.
type jbackup struct {
	Assets []Asset `json:"assets"`
	Debts  []Debt  `json:"debts"`
	Rates  []Rate  `json:"rates"`
}

// Export writes one backup to w in the portable format, indented for human
// readability.
func (m *BackupManager) Export(w io.Writer, id int64) error {
	b, err := m.Get(id)
	if err != nil {
		return err
	}
	jb := jbackup{Assets: b.Assets, Debts: b.Debts, Rates: b.Rates}
	if jb.Assets == nil {
		jb.Assets = []Asset{}
	}
	if jb.Debts == nil {
		jb.Debts = []Debt{}
	}
	if jb.Rates == nil {
		jb.Rates = []Rate{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jb); err != nil {
		return fmt.Errorf("cannot write backup %d: %w", id, err)
	}
	return nil
}

// ExportFilename names an export file after the backup's timestamp.
func ExportFilename(ts time.Time) string {
	return "wallet_backup_" + ts.UTC().Format("2006-01-02_15-04") + ".json"
}

// Import parses a portable backup from r and writes every record of the
// recognized collections into the live store, overwriting by id.
//
// The stream is validated by a full parse pass before any write: a malformed
// file aborts with a ParseError and the store untouched. Unrecognized
// top-level keys are ignored, so files written by newer releases still
// import. Writes share Restore's overwrite and partial-failure semantics.
func (m *BackupManager) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &ParseError{Err: err}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ParseError{Err: err}
	}

	var jb jbackup
	for _, part := range []struct {
		name string
		into any
	}{
		{CollectionAssets, &jb.Assets},
		{CollectionDebts, &jb.Debts},
		{CollectionRates, &jb.Rates},
	} {
		jval, err := jsonpath.Get("$."+part.name, doc)
		if err != nil {
			// Absent collection: tolerated, same as an empty one.
			continue
		}
		items, ok := jval.([]any)
		if !ok {
			return &ParseError{Err: fmt.Errorf("collection %q is not an array", part.name)}
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return &ParseError{Err: err}
		}
		if err := json.Unmarshal(raw, part.into); err != nil {
			return &ParseError{Err: fmt.Errorf("collection %q: %v", part.name, err)}
		}
	}

	return m.restoreCollections(jb.Assets, jb.Debts, jb.Rates)
}
