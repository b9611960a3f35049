// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/fault"
)

// test text round trip of some accounts
func TestBase58RoundTrip(t *testing.T) {

	accounts := []account.Account{
		{},
		{1},
		{0xff, 0xfe, 0xfd},
		{
			0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
			0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
			0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
		},
	}

	for i, a := range accounts {
		s := a.String()
		b, err := account.AccountFromBase58(s)
		if nil != err {
			t.Fatalf("%d: decode: %q error: %s", i, s, err)
		}
		if b != a {
			t.Errorf("%d: decode: %q  actual: %v  expected: %v", i, s, b, a)
		}
	}
}

// a corrupted checksum must be detected
func TestChecksumFailure(t *testing.T) {

	a := account.Account{9, 8, 7, 6, 5}
	s := a.String()

	// flip one character, avoiding a flip back to itself
	c := byte('2')
	if s[5] == c {
		c = '3'
	}
	corrupt := s[:5] + string(c) + s[6:]

	_, err := account.AccountFromBase58(corrupt)
	if nil == err {
		t.Fatal("corrupted account text was accepted")
	}
	if fault.InvalidChecksum != err && fault.CannotDecodeAccount != err {
		t.Fatalf("unexpected error: %s", err)
	}
}

// short and empty strings must be rejected
func TestInvalidLength(t *testing.T) {

	_, err := account.AccountFromBase58("")
	if fault.InvalidKeyLength != err && fault.CannotDecodeAccount != err {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = account.AccountFromBase58("abc")
	if fault.InvalidKeyLength != err && fault.CannotDecodeAccount != err {
		t.Fatalf("unexpected error: %v", err)
	}
}

// text marshalling round trip
func TestMarshalText(t *testing.T) {

	a := account.Account{0x42, 0x99, 0x12}

	text, err := a.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}

	var b account.Account
	err = b.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if b != a {
		t.Errorf("round trip: actual: %v  expected: %v", b, a)
	}
}

// byte conversion
func TestFromBytes(t *testing.T) {

	a := account.Account{1, 2, 3}
	b, err := account.AccountFromBytes(a.Bytes())
	if nil != err {
		t.Fatalf("from bytes error: %s", err)
	}
	if b != a {
		t.Errorf("round trip: actual: %v  expected: %v", b, a)
	}

	_, err = account.AccountFromBytes([]byte{1, 2, 3})
	if fault.InvalidKeyLength != err {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.Account.IsZero(account.Account{}) {
		t.Error("zero account reported non-zero")
	}
	if a.IsZero() {
		t.Error("non-zero account reported zero")
	}
}
