// Package jot is the composition root for the jot note keeper.
//
// It wires the note store in pkg/core to a storage adapter chosen by name
// and hands back a ready Vault.
//
// Notes are kept as one ordered list under a single storage key ("notes" by
// default), serialized as a JSON array of {id, text, date} records. Views
// show them newest first; deletion by position always addresses the
// creation-order index, so display positions must be translated with
// render.CreationIndex.
//
// Adapters:
//
//   - fs: one <key>.json file per key, written atomically, watchable.
//   - sqlite: a kv_entries table through gorm.
//   - badger: an embedded Badger database.
//   - memory: a process-local map, for tests.
//
// Usage:
//
//	v, err := jot.New("./notes", jot.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer v.Close()
//
//	note, err := v.AddNote(ctx, "Buy milk")
package jot
