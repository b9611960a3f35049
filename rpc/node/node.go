// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/counter"
	"github.com/bitmark-inc/menagerie/market"
	"github.com/bitmark-inc/menagerie/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	counter *counter.Counter
}

func New(log *logger.L, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version  string       `json:"version"`
	Uptime   string       `json:"uptime"`
	RPCs     uint64       `json:"rpcs"`
	Counters market.Stats `json:"counters"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Counters = market.Statistics()
	return nil
}
