// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/counter"
	"github.com/bitmark-inc/menagerie/rpc/collectible"
	"github.com/bitmark-inc/menagerie/rpc/market"
	"github.com/bitmark-inc/menagerie/rpc/node"
	"github.com/bitmark-inc/menagerie/rpc/owner"
)

// Create - register all handlers on a fresh RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(collectible.New(log))
	_ = server.Register(market.New(log))
	_ = server.Register(owner.New(log))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
