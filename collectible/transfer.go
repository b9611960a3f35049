// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collectible

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/dna"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/storage"
)

const uint64ByteSize = 8

// Create - issue a new collectible
//
// allocates the identifier, stores the record and appends to the
// owner's index, all staged into the supplied transaction
func Create(trx storage.Transaction, owner account.Account, genes dna.Sequence) (ident.Identifier, error) {

	// ensure single threaded
	toLock.Lock()
	defer toLock.Unlock()

	id, err := ident.New(trx)
	if nil != err {
		return 0, err
	}

	trx.Put(globalData.collectibles, id.Key(), pack(genes, owner))
	create(trx, id, owner)

	return id, nil
}

// SetOwner - transfer a collectible to a new owner
//
// the single choke point for every ownership change; removes the old
// owner's index entries, appends to the new owner's and rewrites the
// record, all staged into the supplied transaction
func SetOwner(trx storage.Transaction, id ident.Identifier, newOwner account.Account) error {

	// ensure single threaded
	toLock.Lock()
	defer toLock.Unlock()

	item, err := GetFrom(trx, id)
	if nil != err {
		return err
	}
	currentOwner := item.Owner

	// get count for current owner record
	dKey := append(currentOwner.Bytes(), id.Key()...)
	dCount := trx.Get(globalData.ownerIndex, dKey)
	if nil == dCount {
		logger.Criticalf("collectible.SetOwner: dKey: %x", dKey)
		logger.Criticalf("collectible.SetOwner: id: %s", id)
		logger.Criticalf("collectible.SetOwner: current owner: %x  %s", currentOwner.Bytes(), currentOwner)
		logger.Criticalf("collectible.SetOwner: new     owner: %x  %s", newOwner.Bytes(), newOwner)
		logger.Panic("collectible.SetOwner: owner index database corrupt")
	}

	// delete the current owner's records
	oKey := append(currentOwner.Bytes(), dCount...)
	trx.Delete(globalData.ownerList, oKey)
	trx.Delete(globalData.ownerIndex, dKey)

	// append to the new owner's records
	create(trx, id, newOwner)

	// rewrite the record with the new owner
	trx.Put(globalData.collectibles, id.Key(), pack(item.Genes, newOwner))

	return nil
}

// internal creation routine, must be called with the lock held
//
// adds the identifier to the owner's list of collectibles
func create(trx storage.Transaction, id ident.Identifier, owner account.Account) {

	// increment the count for owner
	nKey := owner.Bytes()
	count, found := trx.GetN(globalData.ownerNextCount, nKey)
	if !found {
		count = 0
	}
	trx.PutN(globalData.ownerNextCount, nKey, count+1)

	countBytes := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(countBytes, count)

	// write to the owner list
	oKey := append(owner.Bytes(), countBytes...)
	trx.Put(globalData.ownerList, oKey, id.Key())

	// write new index record
	dKey := append(owner.Bytes(), id.Key()...)
	trx.Put(globalData.ownerIndex, dKey, countBytes)
}
