// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balance

import (
	"sync"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/fault"
)

// allowance key: owner lets spender withdraw up to a limit
type allowancePair struct {
	owner   account.Account
	spender account.Account
}

// Ledger - in-memory token ledger implementing the Gateway contract
//
// balances are split into free and reserved portions; only the free
// portion can be transferred or reserved
type Ledger struct {
	sync.RWMutex
	totalSupply uint64
	free        map[account.Account]uint64
	reserved    map[account.Account]uint64
	allowances  map[allowancePair]uint64
}

// NewLedger - create a ledger with the whole supply held by the issuer
func NewLedger(issuer account.Account, supply uint64) *Ledger {
	l := &Ledger{
		totalSupply: supply,
		free:        make(map[account.Account]uint64),
		reserved:    make(map[account.Account]uint64),
		allowances:  make(map[allowancePair]uint64),
	}
	l.free[issuer] = supply
	return l
}

// TotalSupply - the fixed token supply
func (l *Ledger) TotalSupply() uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.totalSupply
}

// BalanceOf - the free balance of an account, zero if unknown
func (l *Ledger) BalanceOf(acc account.Account) uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.free[acc]
}

// ReservedOf - the reserved balance of an account, zero if unknown
func (l *Ledger) ReservedOf(acc account.Account) uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.reserved[acc]
}

// Transfer - move tokens between free balances
func (l *Ledger) Transfer(from account.Account, to account.Account, amount uint64) error {
	l.Lock()
	defer l.Unlock()
	return l.transfer(from, to, amount)
}

// must hold the lock
func (l *Ledger) transfer(from account.Account, to account.Account, amount uint64) error {
	if l.free[from] < amount {
		return fault.InsufficientFunds
	}
	l.free[from] -= amount
	l.free[to] += amount
	return nil
}

// Reserve - move tokens from free to reserved
func (l *Ledger) Reserve(acc account.Account, amount uint64) error {
	l.Lock()
	defer l.Unlock()

	if l.free[acc] < amount {
		return fault.InsufficientFunds
	}
	l.free[acc] -= amount
	l.reserved[acc] += amount
	return nil
}

// Unreserve - release previously reserved tokens
func (l *Ledger) Unreserve(acc account.Account, amount uint64) error {
	l.Lock()
	defer l.Unlock()

	if l.reserved[acc] < amount {
		return fault.ReservationUnderflow
	}
	l.reserved[acc] -= amount
	l.free[acc] += amount
	return nil
}

// Approve - let spender withdraw up to amount from the owner's account
//
// a later call replaces the previous limit
func (l *Ledger) Approve(owner account.Account, spender account.Account, amount uint64) {
	l.Lock()
	defer l.Unlock()
	l.allowances[allowancePair{owner: owner, spender: spender}] = amount
}

// Allowance - the remaining amount spender may withdraw from owner
func (l *Ledger) Allowance(owner account.Account, spender account.Account) uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.allowances[allowancePair{owner: owner, spender: spender}]
}

// TransferFrom - withdraw from another account within an allowance
func (l *Ledger) TransferFrom(spender account.Account, from account.Account, to account.Account, amount uint64) error {
	l.Lock()
	defer l.Unlock()

	key := allowancePair{owner: from, spender: spender}
	if l.allowances[key] < amount {
		return fault.InsufficientAllowance
	}
	err := l.transfer(from, to, amount)
	if nil != err {
		return err
	}
	l.allowances[key] -= amount
	return nil
}
