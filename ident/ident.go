// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ident - allocation of collectible identifiers
//
// identifiers are handed out sequentially starting at 1 and are never
// reused; the counter is stored in the control pool and staged into
// the caller's transaction so an aborted operation does not consume
// an identifier
package ident

import (
	"encoding/binary"
	"math"
	"strconv"
	"sync"

	"github.com/bitmark-inc/menagerie/fault"
	"github.com/bitmark-inc/menagerie/storage"
)

// Identifier - a unique collectible identifier
//
// zero is reserved and never allocated
type Identifier uint64

// IdentifierLength - number of bytes in the packed form
const IdentifierLength = 8

// the counter record in the control pool
var counterKey = []byte("nextCollectibleId")

// globals
var globalData struct {
	sync.Mutex
	control     storage.Handle
	initialised bool
}

// Initialise - attach the allocator to its control pool
func Initialise(control storage.Handle) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.control = control
	globalData.initialised = true
	return nil
}

// Finalise - detach from storage
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.control = nil
	globalData.initialised = false
}

// New - allocate the next identifier inside a transaction
//
// the incremented counter is staged into the same transaction as the
// record being created, so both commit or abort together
func New(trx storage.Transaction) (Identifier, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	next, found := trx.GetN(globalData.control, counterKey)
	if !found {
		next = 1
	}

	// incrementing past this value would wrap to zero
	if math.MaxUint64 == next {
		return 0, fault.IdentifierSpaceExhausted
	}

	trx.PutN(globalData.control, counterKey, next+1)
	return Identifier(next), nil
}

// Key - the packed form for use as a storage key element
func (id Identifier) Key() []byte {
	buffer := make([]byte, IdentifierLength)
	binary.BigEndian.PutUint64(buffer, uint64(id))
	return buffer
}

// String - decimal representation for use by the fmt package (for %s)
func (id Identifier) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IdentifierFromBytes - unpack an identifier from a storage key element
func IdentifierFromBytes(buffer []byte) (Identifier, error) {
	if IdentifierLength != len(buffer) {
		return 0, fault.InvalidKeyLength
	}
	return Identifier(binary.BigEndian.Uint64(buffer)), nil
}
