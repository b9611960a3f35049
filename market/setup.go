// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - the marketplace controller
//
// orchestrates issue, breed, sell, buy and transfer of collectibles,
// composing the registry and the balance gateway; its single job
// beyond plumbing is the escrow invariant: a deposit reserved at
// issue time is released to the original depositor exactly once, on
// the first successful sale, no matter how ownership moves in between
package market

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/balance"
	"github.com/bitmark-inc/menagerie/counter"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/storage"
)

// Policy - marketplace issue policy
//
// a zero CreationDeposit disables escrow entirely; DepositOnBreed
// selects whether bred collectibles also escrow a deposit
type Policy struct {
	CreationDeposit uint64 `gluamapper:"creation_deposit" json:"creation_deposit"`
	DepositOnBreed  bool   `gluamapper:"deposit_on_breed" json:"deposit_on_breed"`
}

// Listing - a collectible offered for sale
type Listing struct {
	Id     ident.Identifier `json:"id,string"`
	Price  uint64           `json:"price,string"`
	Seller account.Account  `json:"seller"`
}

// Deposit - the escrow back-reference for a collectible
//
// records who reserved how much at issue time; deliberately separate
// from the ownership record so later transfers cannot disturb it
type Deposit struct {
	Id        ident.Identifier `json:"id,string"`
	Amount    uint64           `json:"amount,string"`
	Depositor account.Account  `json:"depositor"`
}

// Stats - cumulative operation counts
type Stats struct {
	Issued      uint64 `json:"issued,string"`
	Bred        uint64 `json:"bred,string"`
	Transferred uint64 `json:"transferred,string"`
	Listed      uint64 `json:"listed,string"`
	Sold        uint64 `json:"sold,string"`
}

// globals
var globalData struct {
	sync.Mutex
	log         *logger.L
	listings    storage.Handle
	deposits    storage.Handle
	gateway     balance.Gateway
	policy      Policy
	issued      counter.Counter
	bred        counter.Counter
	transferred counter.Counter
	listed      counter.Counter
	sold        counter.Counter
	initialised bool
}

// Initialise - attach the marketplace to its pools and gateway
func Initialise(listings, deposits storage.Handle, gateway balance.Gateway, policy Policy) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("market")
	globalData.log.Info("starting…")

	globalData.listings = listings
	globalData.deposits = deposits
	globalData.gateway = gateway
	globalData.policy = policy
	globalData.issued = 0
	globalData.bred = 0
	globalData.transferred = 0
	globalData.listed = 0
	globalData.sold = 0
	globalData.initialised = true
	return nil
}

// Finalise - detach from storage and gateway
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.listings = nil
	globalData.deposits = nil
	globalData.gateway = nil
	globalData.initialised = false
}

// Statistics - a snapshot of the operation counters
func Statistics() Stats {
	return Stats{
		Issued:      globalData.issued.Uint64(),
		Bred:        globalData.bred.Uint64(),
		Transferred: globalData.transferred.Uint64(),
		Listed:      globalData.listed.Uint64(),
		Sold:        globalData.sold.Uint64(),
	}
}

const (
	uint64ByteSize = 8

	// length of packed listing: price ⧺ seller
	listingPackedLength = uint64ByteSize + account.IdentifierLength

	// length of packed deposit: amount ⧺ depositor
	depositPackedLength = uint64ByteSize + account.IdentifierLength
)
