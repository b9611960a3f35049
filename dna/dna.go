// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dna - gene sequences and their derivation
//
// a collectible carries a fixed-size gene sequence, immutable after
// creation; breeding derives a child sequence by a per-bit multiplex
// of the two parent sequences under pseudo-random selector bytes
//
// the derivation is a pure function of its inputs so a replay with
// the same recorded entropy reproduces the identical child; the host
// is responsible for supplying entropy that callers cannot predict
package dna

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/menagerie/fault"
)

// SequenceLength - number of bytes in a gene sequence
const SequenceLength = 32

// Sequence - the genetic payload of a collectible
type Sequence [SequenceLength]byte

// size of one block of selector bytes
const selectorBlockSize = 32

// New - create a sequence for a freshly issued collectible
func New(entropy []byte) Sequence {
	return Sequence(sha3.Sum256(entropy))
}

// Derive - compute a child sequence from two parents
//
// selector bytes are drawn in blocks by hashing entropy together with
// a running block counter; for every bit position the child receives
// the parent A bit where the selector bit is 0 and the parent B bit
// where it is 1, so the child is traceable to both parents at the
// bit level
func Derive(parentA Sequence, parentB Sequence, entropy []byte) Sequence {
	var child Sequence

	buffer := make([]byte, len(entropy)+uint64ByteSize)
	copy(buffer, entropy)

	block := uint64(0)
	for offset := 0; offset < SequenceLength; offset += selectorBlockSize {

		binary.BigEndian.PutUint64(buffer[len(entropy):], block)
		selector := sha3.Sum256(buffer)
		block += 1

		limit := offset + selectorBlockSize
		if limit > SequenceLength {
			limit = SequenceLength
		}
		for i := offset; i < limit; i += 1 {
			s := selector[i-offset]
			child[i] = parentA[i]&^s | parentB[i]&s
		}
	}

	return child
}

// String - hex string for use by the fmt package (for %s)
func (sequence Sequence) String() string {
	return hex.EncodeToString(sequence[:])
}

// GoString - hex string for use by the fmt package (for %#v)
func (sequence Sequence) GoString() string {
	return "<DNA:" + hex.EncodeToString(sequence[:]) + ">"
}

// MarshalText - convert a sequence to hex text
func (sequence Sequence) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(SequenceLength)
	buffer := make([]byte, size)
	hex.Encode(buffer, sequence[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a sequence
func (sequence *Sequence) UnmarshalText(s []byte) error {
	if hex.EncodedLen(SequenceLength) != len(s) {
		return fault.InvalidKeyLength
	}
	byteCount, err := hex.Decode(sequence[:], s)
	if nil != err {
		return err
	}
	if SequenceLength != byteCount {
		return fault.InvalidKeyLength
	}
	return nil
}

// SequenceFromBytes - convert a raw byte slice into a sequence
func SequenceFromBytes(buffer []byte) (Sequence, error) {
	var sequence Sequence
	if SequenceLength != len(buffer) {
		return sequence, fault.InvalidKeyLength
	}
	copy(sequence[:], buffer)
	return sequence, nil
}

const uint64ByteSize = 8
