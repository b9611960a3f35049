// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - the store-wide batched transaction
//
// all staged operations commit with a single database write so a
// failed operation can abort leaving the store untouched
type Transaction interface {
	Begin() error
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
	Delete(Handle, []byte)
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	Has(Handle, []byte) bool
	Commit() error
	Abort()
	InUse() bool
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{
		access: access,
	}
}

func (t *transactionData) Begin() error {
	return t.access.Begin()
}

func (t *transactionData) Put(h Handle, key []byte, value []byte) {
	h.Put(key, value)
}

func (t *transactionData) PutN(h Handle, key []byte, value uint64) {
	h.PutN(key, value)
}

func (t *transactionData) Delete(h Handle, key []byte) {
	h.Delete(key)
}

func (t *transactionData) Get(h Handle, key []byte) []byte {
	return h.Get(key)
}

func (t *transactionData) GetN(h Handle, key []byte) (uint64, bool) {
	return h.GetN(key)
}

func (t *transactionData) Has(h Handle, key []byte) bool {
	return h.Has(key)
}

func (t *transactionData) Commit() error {
	return t.access.Commit()
}

func (t *transactionData) Abort() {
	t.access.Abort()
}

func (t *transactionData) InUse() bool {
	return t.access.InUse()
}
