// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/balance"
	"github.com/bitmark-inc/menagerie/collectible"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/market"
	"github.com/bitmark-inc/menagerie/storage"
)

const (
	databaseFileName = "test-market.leveldb"
	logDirectory     = "test-market-log"

	initialFunds   = 1000
	depositAmount  = 100
	standardSupply = 100000
)

var (
	issuer = account.Account{0x15, 0x50}
	alice  = account.Account{0xa1, 0x1c, 0xe0}
	bob    = account.Account{0xb0, 0xb0}
	carol  = account.Account{0xca, 0x60, 0x10}
)

// bring up the full stack with an in-memory ledger as the gateway
func setupMarket(t *testing.T, policy market.Policy) *balance.Ledger {
	t.Helper()

	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)
	err := logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if nil != err {
		t.Fatalf("logger initialise error: %s", err)
	}

	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = ident.Initialise(storage.Pool.Control)
	if nil != err {
		t.Fatalf("ident initialise error: %s", err)
	}
	err = collectible.Initialise(
		storage.Pool.Collectibles,
		storage.Pool.OwnerNextCount,
		storage.Pool.OwnerList,
		storage.Pool.OwnerIndex,
	)
	if nil != err {
		t.Fatalf("collectible initialise error: %s", err)
	}

	ledger := balance.NewLedger(issuer, standardSupply)
	for _, acc := range []account.Account{alice, bob, carol} {
		err = ledger.Transfer(issuer, acc, initialFunds)
		if nil != err {
			t.Fatalf("funding error: %s", err)
		}
	}

	err = market.Initialise(storage.Pool.Listings, storage.Pool.Deposits, ledger, policy)
	if nil != err {
		t.Fatalf("market initialise error: %s", err)
	}
	return ledger
}

// as setupMarket but with a caller supplied gateway
func setupMarketWithGateway(t *testing.T, policy market.Policy, gateway balance.Gateway) {
	t.Helper()

	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)
	err := logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if nil != err {
		t.Fatalf("logger initialise error: %s", err)
	}

	err = storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = ident.Initialise(storage.Pool.Control)
	if nil != err {
		t.Fatalf("ident initialise error: %s", err)
	}
	err = collectible.Initialise(
		storage.Pool.Collectibles,
		storage.Pool.OwnerNextCount,
		storage.Pool.OwnerList,
		storage.Pool.OwnerIndex,
	)
	if nil != err {
		t.Fatalf("collectible initialise error: %s", err)
	}

	err = market.Initialise(storage.Pool.Listings, storage.Pool.Deposits, gateway, policy)
	if nil != err {
		t.Fatalf("market initialise error: %s", err)
	}
}

func teardownMarket(t *testing.T) {
	t.Helper()

	market.Finalise()
	collectible.Finalise()
	ident.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(databaseFileName)
	_ = os.RemoveAll(logDirectory)
}
