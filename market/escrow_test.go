// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/menagerie/collectible"
	"github.com/bitmark-inc/menagerie/dna"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/market"
	"github.com/bitmark-inc/menagerie/market/mocks"
)

// exact gateway call sequence across issue, first sale and resale
func TestGatewayCallSequence(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	gateway := mocks.NewMockGateway(ctl)
	setupMarketWithGateway(t, escrowPolicy, gateway)
	defer teardownMarket(t)

	gomock.InOrder(
		gateway.EXPECT().Reserve(alice, uint64(depositAmount)).Return(nil),
		gateway.EXPECT().Transfer(bob, alice, uint64(250)).Return(nil),
		gateway.EXPECT().Unreserve(alice, uint64(depositAmount)).Return(nil),
		// resale must not touch the reservation again
		gateway.EXPECT().Transfer(carol, bob, uint64(400)).Return(nil),
	)

	id, err := market.Issue(alice, dna.New([]byte("tracked")))
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	if err = market.Sell(alice, id, 250); nil != err {
		t.Fatalf("sell error: %s", err)
	}
	if err = market.Buy(bob, id, 250); nil != err {
		t.Fatalf("buy error: %s", err)
	}
	if err = market.Sell(bob, id, 400); nil != err {
		t.Fatalf("sell error: %s", err)
	}
	if err = market.Buy(carol, id, 400); nil != err {
		t.Fatalf("buy error: %s", err)
	}
}

// a rejected reservation aborts the issue completely
func TestReserveFailureAbortsIssue(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	gateway := mocks.NewMockGateway(ctl)
	setupMarketWithGateway(t, escrowPolicy, gateway)
	defer teardownMarket(t)

	gateway.EXPECT().Reserve(alice, uint64(depositAmount)).Return(fault.InsufficientFunds)

	_, err := market.Issue(alice, dna.New([]byte("rejected")))
	if fault.InsufficientFunds != err {
		t.Fatalf("unexpected error: %v", err)
	}

	// nothing was registered and the identifier was not consumed
	if collectible.Exists(1) {
		t.Error("aborted issue left a record")
	}
	gateway.EXPECT().Reserve(alice, uint64(depositAmount)).Return(nil)
	id, err := market.Issue(alice, dna.New([]byte("accepted")))
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	if 1 != id {
		t.Fatalf("identifier: actual: %d  expected: 1", id)
	}
}

// a failed payment must leave the listing and deposit untouched and
// must never reach Unreserve
func TestPaymentFailureReleasesNothing(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	gateway := mocks.NewMockGateway(ctl)
	setupMarketWithGateway(t, escrowPolicy, gateway)
	defer teardownMarket(t)

	gateway.EXPECT().Reserve(alice, uint64(depositAmount)).Return(nil)
	gateway.EXPECT().Transfer(bob, alice, uint64(250)).Return(fault.InsufficientFunds)

	id, err := market.Issue(alice, dna.New([]byte("unpaid")))
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	if err = market.Sell(alice, id, 250); nil != err {
		t.Fatalf("sell error: %s", err)
	}

	err = market.Buy(bob, id, 250)
	if fault.InsufficientFunds != err {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err := collectible.Get(id)
	if nil != err || item.Owner != alice {
		t.Fatalf("owner changed: %+v  error: %v", item, err)
	}
	if _, err = market.ListingOf(id); nil != err {
		t.Fatalf("listing lost: %v", err)
	}
	if _, err = market.DepositOf(id); nil != err {
		t.Fatalf("deposit lost: %v", err)
	}
}

// with a zero creation deposit the gateway is only used for payments
func TestZeroDepositPolicy(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	gateway := mocks.NewMockGateway(ctl)
	setupMarketWithGateway(t, market.Policy{}, gateway)
	defer teardownMarket(t)

	gateway.EXPECT().Transfer(bob, alice, uint64(50)).Return(nil)

	id, err := market.Issue(alice, dna.New([]byte("free")))
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	if _, err = market.DepositOf(id); fault.DepositNotFound != err {
		t.Fatalf("unexpected error: %v", err)
	}

	if err = market.Sell(alice, id, 50); nil != err {
		t.Fatalf("sell error: %s", err)
	}
	if err = market.Buy(bob, id, 50); nil != err {
		t.Fatalf("buy error: %s", err)
	}
}
