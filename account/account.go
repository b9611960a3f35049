// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/menagerie/fault"
)

// IdentifierLength - number of bytes in an account identifier
const IdentifierLength = 32

// number of checksum bytes appended to the text form
const checksumLength = 4

// Account - the owner of collectibles and token balances
//
// the host runtime authenticates callers, so an account here is just
// an opaque fixed-size identifier; the text form is base58 over the
// identifier with a truncated SHA3-256 checksum appended
type Account [IdentifierLength]byte

// Bytes - the raw bytes for use as a storage key element
func (account Account) Bytes() []byte {
	return account[:]
}

// String - base58 with checksum
func (account Account) String() string {
	checksum := sha3.Sum256(account[:])
	buffer := make([]byte, 0, IdentifierLength+checksumLength)
	buffer = append(buffer, account[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its base58 text form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert base58 text back to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}

// AccountFromBase58 - decode a base58 string and verify its checksum
func AccountFromBase58(accountBase58Encoded string) (Account, error) {
	var account Account

	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return account, fault.CannotDecodeAccount
	}

	if IdentifierLength+checksumLength != len(accountDecoded) {
		return account, fault.InvalidKeyLength
	}

	checksum := sha3.Sum256(accountDecoded[:IdentifierLength])
	for i, c := range accountDecoded[IdentifierLength:] {
		if c != checksum[i] {
			return account, fault.InvalidChecksum
		}
	}

	copy(account[:], accountDecoded[:IdentifierLength])
	return account, nil
}

// AccountFromBytes - convert a raw byte slice back to an account
func AccountFromBytes(buffer []byte) (Account, error) {
	var account Account
	if IdentifierLength != len(buffer) {
		return account, fault.InvalidKeyLength
	}
	copy(account[:], buffer)
	return account, nil
}

// IsZero - check for the all-zero account
func (account Account) IsZero() bool {
	for _, b := range account {
		if 0 != b {
			return false
		}
	}
	return true
}
