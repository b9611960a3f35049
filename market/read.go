// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/ident"
)

// ListingOf - the current sale offer for a collectible
//
// fails with fault.NotListedForSale when no offer is open
func ListingOf(id ident.Identifier) (*Listing, error) {
	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	return unpackListing(id, globalData.listings.Get(id.Key()))
}

// DepositOf - the unreleased escrow deposit for a collectible
//
// fails with fault.DepositNotFound once the deposit has been released
// or if none was ever taken
func DepositOf(id ident.Identifier) (*Deposit, error) {
	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	return unpackDeposit(id, globalData.deposits.Get(id.Key()))
}

func packListing(price uint64, seller account.Account) []byte {
	packed := make([]byte, uint64ByteSize, listingPackedLength)
	binary.BigEndian.PutUint64(packed, price)
	return append(packed, seller.Bytes()...)
}

func unpackListing(id ident.Identifier, packed []byte) (*Listing, error) {
	if nil == packed {
		return nil, fault.NotListedForSale
	}
	seller, err := account.AccountFromBytes(packed[uint64ByteSize:])
	if nil != err {
		return nil, err
	}
	return &Listing{
		Id:     id,
		Price:  binary.BigEndian.Uint64(packed[:uint64ByteSize]),
		Seller: seller,
	}, nil
}

func packDeposit(amount uint64, depositor account.Account) []byte {
	packed := make([]byte, uint64ByteSize, depositPackedLength)
	binary.BigEndian.PutUint64(packed, amount)
	return append(packed, depositor.Bytes()...)
}

func unpackDeposit(id ident.Identifier, packed []byte) (*Deposit, error) {
	if nil == packed {
		return nil, fault.DepositNotFound
	}
	depositor, err := account.AccountFromBytes(packed[uint64ByteSize:])
	if nil != err {
		return nil, err
	}
	return &Deposit{
		Id:        id,
		Amount:    binary.BigEndian.Uint64(packed[:uint64ByteSize]),
		Depositor: depositor,
	}, nil
}
