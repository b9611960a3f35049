// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/menagerie/fault"
)

// Access - database access with a staging batch
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

type accessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newAccess(db *leveldb.DB, batch *leveldb.Batch, cache Cache) Access {
	return &accessData{
		inUse: false,
		db:    db,
		batch: batch,
		cache: cache,
	}
}

func (d *accessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.TransactionAlreadyInUse
	}

	d.inUse = true
	return nil
}

func (d *accessData) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

func (d *accessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), []byte{})
	d.batch.Delete(key)
}

func (d *accessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	d.batch.Reset()
	d.inUse = false
	return err
}

func (d *accessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

func (d *accessData) Get(key []byte) ([]byte, error) {
	val, found := d.cache.Get(string(key))
	if found {
		return val, nil
	}
	return d.db.Get(key, nil)
}

func (d *accessData) Has(key []byte) (bool, error) {
	_, found := d.cache.Get(string(key))
	if found {
		return true, nil
	}
	return d.db.Has(key, nil)
}

func (d *accessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

func (d *accessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}
