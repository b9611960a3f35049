// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/collectible"
	"github.com/bitmark-inc/menagerie/dna"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/storage"
)

// Issue - register a brand new collectible for the caller
//
// if the policy demands a creation deposit it is reserved from the
// caller before the record is committed; a reserve failure aborts the
// whole operation and no identifier is consumed
func Issue(caller account.Account, genes dna.Sequence) (ident.Identifier, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	id, err := issue(caller, genes, globalData.policy.CreationDeposit > 0)
	if nil != err {
		return 0, err
	}
	globalData.issued.Increment()
	return id, nil
}

// Breed - derive a new collectible from two parents owned by the caller
//
// the child's genes are a deterministic mix of the parents' genes
// keyed by the supplied entropy; whether a deposit is reserved follows
// the DepositOnBreed policy
func Breed(caller account.Account, parentA ident.Identifier, parentB ident.Identifier, entropy []byte) (ident.Identifier, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	if parentA == parentB {
		return 0, fault.CannotBreedWithSelf
	}

	itemA, err := collectible.Get(parentA)
	if nil != err {
		return 0, err
	}
	itemB, err := collectible.Get(parentB)
	if nil != err {
		return 0, err
	}
	if itemA.Owner != caller || itemB.Owner != caller {
		return 0, fault.NotCollectibleOwner
	}

	genes := dna.Derive(itemA.Genes, itemB.Genes, entropy)

	withDeposit := globalData.policy.DepositOnBreed && globalData.policy.CreationDeposit > 0
	id, err := issue(caller, genes, withDeposit)
	if nil != err {
		return 0, err
	}
	globalData.bred.Increment()

	globalData.log.Infof("bred: %s from parents: %s and %s", id, parentA, parentB)
	return id, nil
}

// shared issue path, lock already held
//
// order matters: the identifier and record are staged first, the
// deposit is reserved second, and only then is anything committed, so
// any failure leaves both the store and the gateway untouched
func issue(owner account.Account, genes dna.Sequence, withDeposit bool) (ident.Identifier, error) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	id, err := collectible.Create(trx, owner, genes)
	if nil != err {
		trx.Abort()
		return 0, err
	}

	if withDeposit {
		amount := globalData.policy.CreationDeposit
		err = globalData.gateway.Reserve(owner, amount)
		if nil != err {
			trx.Abort()
			return 0, err
		}
		trx.Put(globalData.deposits, id.Key(), packDeposit(amount, owner))
	}

	err = trx.Commit()
	if nil != err {
		// a failed commit after a successful reserve would strand
		// tokens in escrow; the store is broken at this point anyway
		logger.Panicf("market: issue commit failed: %s", err)
	}

	globalData.log.Infof("issued: %s to: %s", id, owner)
	return id, nil
}
