// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package owner

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

// Owner - type for the RPC
type Owner struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	MaximumListCount = 100
	rateLimitOwner   = 200
	rateBurstOwner   = 100
)

func New(log *logger.L) *Owner {
	return &Owner{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOwner, rateBurstOwner),
	}
}

// ListArguments - arguments for RPC
type ListArguments struct {
	Owner *account.Account `json:"owner"`        // base58
	Start uint64           `json:"start,string"` // first record number
	Count int              `json:"count"`        // number of records
}

// ListReply - result of owner list RPC
type ListReply struct {
	Next uint64        `json:"next,string"` // start value for the next call
	Data []OwnedRecord `json:"data"`        // list of owned collectibles
}

// OwnedRecord - one collectible in an owner's list
type OwnedRecord struct {
	N     uint64           `json:"n,string"`  // position in the owner's list
	Id    ident.Identifier `json:"id,string"` // decimal
	Genes dna.Sequence     `json:"genes"`     // hex
	Price uint64           `json:"price,string,omitempty"`
}

// List - list collectibles belonging to an account
func (owner *Owner) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.LimitN(owner.Limiter, arguments.Count, MaximumListCount); nil != err {
		return err
	}

	log := owner.Log
	log.Infof("Owner.List: %+v", arguments)

	if nil == arguments.Owner {
		return fault.MissingParameters
	}

	records, err := collectible.ListFor(*arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	data := make([]OwnedRecord, len(records))
	current := uint64(0)
	for i, r := range records {
		item, err := collectible.Get(r.Id)
		if nil != err {
			// the list pool references a missing record
			log.Criticalf("owner list entry %d has no record: %s", r.Id, err)
			logger.Panicf("owner list entry %d has no record: %s", r.Id, err)
		}
		data[i] = OwnedRecord{
			N:     r.N,
			Id:    r.Id,
			Genes: item.Genes,
		}
		if listing, err := market.ListingOf(r.Id); nil == err {
			data[i].Price = listing.Price
		}
		current = r.N
	}
	reply.Data = data

	// if no records were found then just return next as zero
	// otherwise the next possible number
	if 0 == len(records) {
		reply.Next = 0
	} else {
		reply.Next = current + 1
	}
	return nil
}
