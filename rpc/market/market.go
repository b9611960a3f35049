// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/collectible"
	"github.com/bitmark-inc/menagerie/dna"
	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/market"
	"github.com/bitmark-inc/menagerie/rpc/ratelimit"
)

// Market - type for the RPC
type Market struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitMarket = 200
	rateBurstMarket = 100
)

func New(log *logger.L) *Market {
	return &Market{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitMarket, rateBurstMarket),
	}
}

// Market issue
// ------------

// IssueArguments - arguments for RPC
type IssueArguments struct {
	Owner *account.Account `json:"owner"` // base58
	Genes *dna.Sequence    `json:"genes"` // hex, optional
	Seed  string           `json:"seed"`  // entropy for fresh genes when omitted
}

// IssueReply - result of issue RPC
type IssueReply struct {
	Id    ident.Identifier `json:"id,string"`
	Genes dna.Sequence     `json:"genes"`
}

// Issue - register a new collectible
func (m *Market) Issue(arguments *IssueArguments, reply *IssueReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Issue: %+v", arguments)

	if nil == arguments.Owner {
		return fault.MissingParameters
	}

	var genes dna.Sequence
	if nil != arguments.Genes {
		genes = *arguments.Genes
	} else if "" != arguments.Seed {
		genes = dna.New([]byte(arguments.Seed))
	} else {
		return fault.MissingParameters
	}

	id, err := market.Issue(*arguments.Owner, genes)
	if nil != err {
		return err
	}

	reply.Id = id
	reply.Genes = genes
	return nil
}

// Market breed
// ------------

// BreedArguments - arguments for RPC
type BreedArguments struct {
	Owner   *account.Account `json:"owner"`          // base58
	ParentA ident.Identifier `json:"parentA,string"` // decimal
	ParentB ident.Identifier `json:"parentB,string"` // decimal
	Seed    string           `json:"seed"`           // entropy for the gene mix
}

// BreedReply - result of breed RPC
type BreedReply struct {
	Id    ident.Identifier `json:"id,string"`
	Genes dna.Sequence     `json:"genes"`
}

// Breed - derive a new collectible from two owned parents
func (m *Market) Breed(arguments *BreedArguments, reply *BreedReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Breed: %+v", arguments)

	if nil == arguments.Owner {
		return fault.MissingParameters
	}

	id, err := market.Breed(*arguments.Owner, arguments.ParentA, arguments.ParentB, []byte(arguments.Seed))
	if nil != err {
		return err
	}

	item, err := collectible.Get(id)
	if nil != err {
		return err
	}

	reply.Id = id
	reply.Genes = item.Genes
	return nil
}

// Market sell
// -----------

// SellArguments - arguments for RPC
type SellArguments struct {
	Owner *account.Account `json:"owner"`        // base58
	Id    ident.Identifier `json:"id,string"`    // decimal
	Price uint64           `json:"price,string"` // decimal
}

// SellReply - result of sell RPC
type SellReply struct {
	Listing market.Listing `json:"listing"`
}

// Sell - offer an owned collectible at a fixed price
func (m *Market) Sell(arguments *SellArguments, reply *SellReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Sell: %+v", arguments)

	if nil == arguments.Owner {
		return fault.MissingParameters
	}

	err := market.Sell(*arguments.Owner, arguments.Id, arguments.Price)
	if nil != err {
		return err
	}

	listing, err := market.ListingOf(arguments.Id)
	if nil != err {
		return err
	}

	reply.Listing = *listing
	return nil
}

// Market delist
// -------------

// DelistArguments - arguments for RPC
type DelistArguments struct {
	Owner *account.Account `json:"owner"`     // base58
	Id    ident.Identifier `json:"id,string"` // decimal
}

// DelistReply - result of delist RPC
type DelistReply struct {
	Id ident.Identifier `json:"id,string"`
}

// Delist - withdraw an open sale offer
func (m *Market) Delist(arguments *DelistArguments, reply *DelistReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Delist: %+v", arguments)

	if nil == arguments.Owner {
		return fault.MissingParameters
	}

	err := market.Delist(*arguments.Owner, arguments.Id)
	if nil != err {
		return err
	}

	reply.Id = arguments.Id
	return nil
}

// Market buy
// ----------

// BuyArguments - arguments for RPC
type BuyArguments struct {
	Buyer    *account.Account `json:"buyer"`           // base58
	Id       ident.Identifier `json:"id,string"`       // decimal
	MaxPrice uint64           `json:"maxPrice,string"` // buyer's price ceiling
}

// BuyReply - result of buy RPC
type BuyReply struct {
	Id     ident.Identifier `json:"id,string"`
	Price  uint64           `json:"price,string"`
	Seller account.Account  `json:"seller"`
}

// Buy - purchase a listed collectible
func (m *Market) Buy(arguments *BuyArguments, reply *BuyReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Buy: %+v", arguments)

	if nil == arguments.Buyer {
		return fault.MissingParameters
	}

	// record the price actually paid before the listing disappears
	listing, err := market.ListingOf(arguments.Id)
	if nil != err {
		return err
	}

	err = market.Buy(*arguments.Buyer, arguments.Id, arguments.MaxPrice)
	if nil != err {
		return err
	}

	reply.Id = arguments.Id
	reply.Price = listing.Price
	reply.Seller = listing.Seller
	return nil
}

// Market transfer
// ---------------

// TransferArguments - arguments for RPC
type TransferArguments struct {
	Owner    *account.Account `json:"owner"`     // base58
	Id       ident.Identifier `json:"id,string"` // decimal
	NewOwner *account.Account `json:"newOwner"`  // base58
}

// TransferReply - result of transfer RPC
type TransferReply struct {
	Id    ident.Identifier `json:"id,string"`
	Owner account.Account  `json:"owner"`
}

// Transfer - give a collectible to another account
func (m *Market) Transfer(arguments *TransferArguments, reply *TransferReply) error {

	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}

	log := m.Log
	log.Infof("Market.Transfer: %+v", arguments)

	if nil == arguments.Owner || nil == arguments.NewOwner {
		return fault.MissingParameters
	}

	err := market.Transfer(*arguments.Owner, arguments.Id, *arguments.NewOwner)
	if nil != err {
		return err
	}

	reply.Id = arguments.Id
	reply.Owner = *arguments.NewOwner
	return nil
}
