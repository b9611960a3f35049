// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Handle - reduced interface to a pool for other packages
//
// writes are staged into the store-wide batch and only become durable
// when the enclosing transaction commits
type Handle interface {
	Put(key []byte, value []byte)
	PutN(key []byte, value uint64)
	Delete(key []byte)
	Get(key []byte) []byte
	GetN(key []byte) (uint64, bool)
	Has(key []byte) bool
	NewFetchCursor() *FetchCursor
}

// PoolHandle - the structure of a pool handle
type PoolHandle struct {
	prefix byte
	limit  []byte
	access Access
}

// Element - a binary key/value pair
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - stage a key/value bytes pair
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		logger.Panic("pool.Put nil access")
		return
	}
	p.access.Put(p.prefixKey(key), value)
}

// PutN - stage a key with an 8 byte big endian value
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(key, buffer)
}

// Delete - stage removal of a key
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		logger.Panic("pool.Delete nil access")
		return
	}
	p.access.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// staged values are visible; returns nil if the key does not exist
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		return nil
	}
	value, err := p.access.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode the first 8 bytes as big endian uint64
//
// second return is false if the record was not found
// panics if the record is shorter than 8 bytes
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < uint64ByteSize {
		logger.Panicf("pool.GetN truncated record for: %x: %s", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:uint64ByteSize])
	return n, true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		return false
	}
	value, err := p.access.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return value
}

const uint64ByteSize = 8
