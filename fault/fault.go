// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine if an error is an ExistsError
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if an error is an InvalidError
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine if an error is a LengthError
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine if an error is a NotFoundError
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if an error is a ProcessError
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ProcessError("already initialised")
	CannotBreedWithSelf          = InvalidError("cannot breed with self")
	CannotDecodeAccount          = InvalidError("cannot decode account")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	CollectibleNotFound          = NotFoundError("collectible not found")
	DatabaseVersionMismatch      = ProcessError("database version mismatch")
	DepositNotFound              = NotFoundError("deposit not found")
	IdentifierSpaceExhausted     = ProcessError("identifier space exhausted")
	InsufficientAllowance        = ProcessError("insufficient allowance")
	InsufficientFunds            = ProcessError("insufficient funds")
	InvalidChecksum              = InvalidError("invalid checksum")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIpAddress             = InvalidError("invalid ip address")
	InvalidKeyLength             = LengthError("invalid key length")
	InvalidSellPrice             = InvalidError("invalid sell price")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingParameters            = InvalidError("missing parameters")
	NotCollectibleOwner          = InvalidError("not collectible owner")
	NotInitialised               = ProcessError("not initialised")
	NotListedForSale             = NotFoundError("not listed for sale")
	PriceExceedsLimit            = InvalidError("price exceeds limit")
	RateLimiting                 = ProcessError("rate limiting")
	ReservationUnderflow         = ProcessError("reservation underflow")
	TransactionAlreadyInUse      = ProcessError("transaction already in use")
	TransferToSelf               = InvalidError("transfer to self")
)
