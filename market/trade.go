// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/collectible"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/storage"
)

// Sell - offer a collectible for sale at a fixed price
//
// calling again replaces the previous asking price
func Sell(caller account.Account, id ident.Identifier, price uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	if 0 == price {
		return fault.InvalidSellPrice
	}

	item, err := collectible.Get(id)
	if nil != err {
		return err
	}
	if item.Owner != caller {
		return fault.NotCollectibleOwner
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	trx.Put(globalData.listings, id.Key(), packListing(price, caller))
	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.listed.Increment()
	globalData.log.Infof("listed: %s at: %d by: %s", id, price, caller)
	return nil
}

// Delist - withdraw a collectible from sale
func Delist(caller account.Account, id ident.Identifier) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	item, err := collectible.Get(id)
	if nil != err {
		return err
	}
	if item.Owner != caller {
		return fault.NotCollectibleOwner
	}

	if !globalData.listings.Has(id.Key()) {
		return fault.NotListedForSale
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	trx.Delete(globalData.listings, id.Key())
	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("delisted: %s by: %s", id, caller)
	return nil
}

// Buy - purchase a listed collectible
//
// maxPrice is the buyer's price ceiling; the purchase pays the listed
// price, never more, and fails rather than exceed the ceiling
//
// on the first sale of a collectible the creation deposit, if any, is
// released back to the original depositor; later sales find no deposit
// record and release nothing
func Buy(caller account.Account, id ident.Identifier, maxPrice uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	listing, err := unpackListing(id, globalData.listings.Get(id.Key()))
	if nil != err {
		return err
	}
	if listing.Seller == caller {
		return fault.TransferToSelf
	}
	if listing.Price > maxPrice {
		return fault.PriceExceedsLimit
	}

	// a listing without its record means the pools are out of step
	item, err := collectible.Get(id)
	if nil != err {
		logger.Panicf("market: listing %s has no registry record: %s", id, err)
	}
	if item.Owner != listing.Seller {
		logger.Panicf("market: listing %s seller: %s does not match owner: %s", id, listing.Seller, item.Owner)
	}

	// all local checks passed, move the payment
	err = globalData.gateway.Transfer(caller, listing.Seller, listing.Price)
	if nil != err {
		return err
	}

	// first sale releases the escrowed creation deposit
	deposit, _ := unpackDeposit(id, globalData.deposits.Get(id.Key()))
	if nil != deposit {
		err = globalData.gateway.Unreserve(deposit.Depositor, deposit.Amount)
		if nil != err {
			// the gateway lost track of a reservation this module made
			logger.Panicf("market: deposit release for %s failed: %s", id, err)
		}
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		logger.Panicf("market: buy transaction for %s failed: %s", id, err)
	}
	if nil != deposit {
		trx.Delete(globalData.deposits, id.Key())
	}
	err = collectible.SetOwner(trx, id, caller)
	if nil != err {
		trx.Abort()
		logger.Panicf("market: ownership update for %s failed: %s", id, err)
	}
	trx.Delete(globalData.listings, id.Key())
	err = trx.Commit()
	if nil != err {
		logger.Panicf("market: buy commit for %s failed: %s", id, err)
	}

	globalData.sold.Increment()
	globalData.log.Infof("sold: %s to: %s for: %d", id, caller, listing.Price)
	return nil
}

// Transfer - give a collectible away without payment
//
// any open listing is invalidated: the new owner never inherits the
// previous owner's asking price
func Transfer(caller account.Account, id ident.Identifier, to account.Account) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	if to == caller {
		return fault.TransferToSelf
	}

	item, err := collectible.Get(id)
	if nil != err {
		return err
	}
	if item.Owner != caller {
		return fault.NotCollectibleOwner
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = collectible.SetOwner(trx, id, to)
	if nil != err {
		trx.Abort()
		return err
	}
	trx.Delete(globalData.listings, id.Key())
	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.transferred.Increment()
	globalData.log.Infof("transferred: %s from: %s to: %s", id, caller, to)
	return nil
}
