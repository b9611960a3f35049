// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(databaseFileName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

// commit a single element to a pool
func put(t *testing.T, pool storage.Handle, key string, value string) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	trx.Put(pool, []byte(key), []byte(value))
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

// check that committed data can be read back
func TestPutGet(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	put(t, p, "key-one", "data-one")
	put(t, p, "key-two", "data-two")

	value := p.Get([]byte("key-one"))
	if !bytes.Equal([]byte("data-one"), value) {
		t.Errorf("actual: %q  expected: %q", value, "data-one")
	}

	if !p.Has([]byte("key-two")) {
		t.Error("missing key-two")
	}

	if nil != p.Get([]byte("key-three")) {
		t.Error("unexpected key-three")
	}
}

// staged values must be visible before commit and gone after abort
func TestStagedVisibility(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	trx.Put(p, []byte("staged"), []byte("value"))

	value := trx.Get(p, []byte("staged"))
	if !bytes.Equal([]byte("value"), value) {
		t.Errorf("staged value not visible: %q", value)
	}

	trx.Abort()

	if nil != p.Get([]byte("staged")) {
		t.Error("aborted value still present")
	}
}

// only one transaction at a time
func TestTransactionExclusion(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}

	_, err = storage.NewDBTransaction()
	if fault.TransactionAlreadyInUse != err {
		t.Fatalf("unexpected error: %v", err)
	}

	trx.Abort()

	trx, err = storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error after abort: %s", err)
	}
	trx.Abort()
}

// 8 byte big endian records
func TestPutNGetN(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Control

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	trx.PutN(p, []byte("counter"), 42)
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	n, found := p.GetN([]byte("counter"))
	if !found {
		t.Fatal("missing counter")
	}
	if 42 != n {
		t.Errorf("actual: %d  expected: %d", n, 42)
	}

	_, found = p.GetN([]byte("no-counter"))
	if found {
		t.Error("unexpected counter record")
	}
}

// cursor iterates committed records in key order and respects pool boundaries
func TestCursor(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	expected := []struct {
		key   string
		value string
	}{
		{"key-five", "data-five"},
		{"key-one", "data-one"},
		{"key-two", "data-two"},
	}

	// insertion in non-sorted order
	put(t, p, "key-one", "data-one")
	put(t, p, "key-five", "data-five")
	put(t, p, "key-two", "data-two")

	// a record in another pool must not appear in this cursor
	put(t, storage.Pool.Control, "key-zero", "other-pool")

	cursor := p.NewFetchCursor()
	elements, err := cursor.Fetch(2)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 2 != len(elements) {
		t.Fatalf("fetch count: actual: %d  expected: %d", len(elements), 2)
	}

	// continue from saved position
	more, err := cursor.Fetch(10)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	elements = append(elements, more...)

	if len(expected) != len(elements) {
		t.Fatalf("element count: actual: %d  expected: %d", len(elements), len(expected))
	}
	for i, e := range expected {
		if !bytes.Equal([]byte(e.key), elements[i].Key) {
			t.Errorf("%d: key: actual: %q  expected: %q", i, elements[i].Key, e.key)
		}
		if !bytes.Equal([]byte(e.value), elements[i].Value) {
			t.Errorf("%d: value: actual: %q  expected: %q", i, elements[i].Value, e.value)
		}
	}
}

// deleted keys disappear after commit
func TestDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.TestData

	put(t, p, "doomed", "data")

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	trx.Delete(p, []byte("doomed"))
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	if p.Has([]byte("doomed")) {
		t.Error("deleted key still present")
	}
}
