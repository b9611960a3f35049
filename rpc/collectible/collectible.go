// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collectible

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/collectible"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/market"
	"github.com/bitmark-inc/menagerie/rpc/ratelimit"
)

// Collectible - type for the RPC
type Collectible struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitCollectible = 200
	rateBurstCollectible = 100
)

func New(log *logger.L) *Collectible {
	return &Collectible{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCollectible, rateBurstCollectible),
	}
}

// GetArguments - arguments for RPC
type GetArguments struct {
	Id ident.Identifier `json:"id,string"` // decimal
}

// GetReply - result of get RPC
//
// listing and deposit are nil when the collectible is not for sale or
// its deposit has been released
type GetReply struct {
	Record  collectible.Collectible `json:"record"`
	Listing *market.Listing         `json:"listing,omitempty"`
	Deposit *market.Deposit         `json:"deposit,omitempty"`
}

// Get - fetch one collectible with its market status
func (c *Collectible) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(c.Limiter); nil != err {
		return err
	}

	log := c.Log
	log.Infof("Collectible.Get: %+v", arguments)

	item, err := collectible.Get(arguments.Id)
	if nil != err {
		return err
	}
	reply.Record = *item

	listing, err := market.ListingOf(arguments.Id)
	switch err {
	case nil:
		reply.Listing = listing
	case fault.NotListedForSale:
	default:
		return err
	}

	deposit, err := market.DepositOf(arguments.Id)
	switch err {
	case nil:
		reply.Deposit = deposit
	case fault.DepositNotFound:
	default:
		return err
	}

	return nil
}
