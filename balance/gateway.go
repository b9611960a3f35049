// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - the token ledger the marketplace escrows against
//
// the real ledger lives outside this module; the marketplace only
// depends on the Gateway contract below, and the Ledger in this
// package is a faithful in-memory implementation of that contract
// for tests and single-node operation
package balance

import (
	"github.com/bitmark-inc/menagerie/account"
)

// Gateway - the escrow operations the marketplace requires
//
// the caller must pair every successful Reserve with exactly one
// Unreserve of the same amount for the same account; Unreserve of
// more than is reserved signals a bookkeeping bug, never a normal
// runtime condition
type Gateway interface {

	// move amount from the account's free balance to its reserved
	// balance; fails with fault.InsufficientFunds
	Reserve(acc account.Account, amount uint64) error

	// move amount from the account's reserved balance back to its
	// free balance; fails with fault.ReservationUnderflow
	Unreserve(acc account.Account, amount uint64) error

	// move amount between the free balances of two accounts; fails
	// with fault.InsufficientFunds
	Transfer(from account.Account, to account.Account, amount uint64) error
}
