package table

import (
	"slices"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// Field is a single key/value pair of a [Record].
type Field struct {
	Key   string
	Value string
}

// Record is an ordered set of fields. The order is the insertion order of the
// source document and determines the default column order in [FromRecords].
type Record []Field

// Keys returns the record's keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value for key and whether it was present.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// RecordOf builds a record from alternating key, value arguments.
// A trailing key without a value is ignored.
func RecordOf(kv ...string) Record {
	r := make(Record, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		r = append(r, Field{Key: kv[i], Value: kv[i+1]})
	}
	return r
}

// FromRecords projects records onto titles and returns a table with titles as
// its header.
//
// If titles is empty, the key order of the first record is used. Every
// record's key set must equal the title set, compared without regard to order.
func FromRecords(records []Record, titles ...string) (Table, error) {
	if len(records) == 0 {
		return Table{}, errors.New(errors.ErrCodeEmptyInput, "no records to render")
	}
	if len(titles) == 0 {
		titles = records[0].Keys()
	}
	if len(titles) == 0 {
		return Table{}, errors.New(errors.ErrCodeEmptyInput, "no titles: first record has no keys")
	}

	want := keySet(titles)
	body := make([][]string, len(records))
	for i, rec := range records {
		if !sameKeys(want, rec) {
			return Table{}, errors.New(errors.ErrCodeSchemaMismatch,
				"record %d has keys %v, want %v", i, rec.Keys(), sortedKeys(want))
		}
		row := make([]string, len(titles))
		for j, title := range titles {
			row[j], _ = rec.Get(title)
		}
		body[i] = row
	}
	return New(titles, body), nil
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func sameKeys(want map[string]struct{}, rec Record) bool {
	got := keySet(rec.Keys())
	if len(got) != len(want) {
		return false
	}
	for k := range got {
		if _, ok := want[k]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
