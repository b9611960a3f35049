// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup for the rpc handler packages
package fixtures

import (
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// test accounts shared by the handler tests
var (
	Alice = account.Account{0xa1, 0x1c, 0xe0}
	Bob   = account.Account{0xb0, 0xb0}
)

var (
	certificatePEM string
	keyPEM         string
)

func init() {
	validUntil := time.Now().Add(24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair("menagerie testing", validUntil, false, nil)
	if nil != err {
		panic(fmt.Sprintf("cannot generate test certificate: %s", err))
	}
	certificatePEM = string(cert)
	keyPEM = string(key)
}

// Certificate - a freshly generated self-signed test certificate
func Certificate() string {
	return certificatePEM
}

// Key - the private key matching Certificate
func Key() string {
	return keyPEM
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
