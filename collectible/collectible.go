// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package collectible - the registry of issued collectibles
//
// stores each collectible's immutable gene sequence and mutable owner
// and maintains the per-owner index in lock-step, so that an
// identifier always appears in exactly one owner's list and that list
// entry always matches the record's owner field
//
// every ownership change passes through SetOwner, the single choke
// point that keeps record and index consistent
package collectible

import (
	"sync"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/dna"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/storage"
)

// Collectible - one registry entry
type Collectible struct {
	Id    ident.Identifier `json:"id,string"`
	Genes dna.Sequence     `json:"genes"`
	Owner account.Account  `json:"owner"`
}

// length of the packed record: genes ⧺ owner
const packedLength = dna.SequenceLength + account.IdentifierLength

// to ensure synchronised ownership updates
var toLock sync.Mutex

// globals
var globalData struct {
	sync.Mutex
	collectibles   storage.Handle
	ownerNextCount storage.Handle
	ownerList      storage.Handle
	ownerIndex     storage.Handle
	initialised    bool
}

// Initialise - attach the registry to its storage pools
func Initialise(collectibles, ownerNextCount, ownerList, ownerIndex storage.Handle) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.collectibles = collectibles
	globalData.ownerNextCount = ownerNextCount
	globalData.ownerList = ownerList
	globalData.ownerIndex = ownerIndex
	globalData.initialised = true
	return nil
}

// Finalise - detach from storage
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.collectibles = nil
	globalData.ownerNextCount = nil
	globalData.ownerList = nil
	globalData.ownerIndex = nil
	globalData.initialised = false
}

// Get - fetch a collectible by its identifier
func Get(id ident.Identifier) (*Collectible, error) {
	packed := globalData.collectibles.Get(id.Key())
	return unpack(id, packed)
}

// GetFrom - fetch a collectible through a transaction
//
// staged records are visible; a nil transaction reads the pool directly
func GetFrom(trx storage.Transaction, id ident.Identifier) (*Collectible, error) {
	if nil == trx {
		return Get(id)
	}
	packed := trx.Get(globalData.collectibles, id.Key())
	return unpack(id, packed)
}

// Exists - check the registry has this identifier
func Exists(id ident.Identifier) bool {
	return globalData.collectibles.Has(id.Key())
}

// IsOwnedBy - check the owner index for a specific entry
func IsOwnedBy(owner account.Account, id ident.Identifier) bool {
	dKey := append(owner.Bytes(), id.Key()...)
	return globalData.ownerIndex.Has(dKey)
}

func unpack(id ident.Identifier, packed []byte) (*Collectible, error) {
	if nil == packed {
		return nil, fault.CollectibleNotFound
	}
	genes, err := dna.SequenceFromBytes(packed[:dna.SequenceLength])
	if nil != err {
		return nil, err
	}
	owner, err := account.AccountFromBytes(packed[dna.SequenceLength:])
	if nil != err {
		return nil, err
	}
	return &Collectible{
		Id:    id,
		Genes: genes,
		Owner: owner,
	}, nil
}

func pack(genes dna.Sequence, owner account.Account) []byte {
	packed := make([]byte, 0, packedLength)
	packed = append(packed, genes[:]...)
	packed = append(packed, owner.Bytes()...)
	return packed
}
