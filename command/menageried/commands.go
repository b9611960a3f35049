// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
)

const (
	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create the certificate files; these commands
// cannot access any internal database or states or the configuration
// file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "version":
		fmt.Println(version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Println("error: missing command")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)
		fmt.Println()
		fmt.Println("supported commands:")
		fmt.Println()
		fmt.Println("  help                                   (h)      - display this message")
		fmt.Println("  version                                (v)      - display version number")
		fmt.Println()
		fmt.Println("  gen-rpc-cert [DIR]                     (rpc)    - create private key and certificate")
		fmt.Println("               [DIR [IPs...]]")
		fmt.Println()
		fmt.Println("  start with:")
		fmt.Printf("    %s --config-file=menageried.conf\n", program)
		fmt.Println()

		exitwithstatus.Exit(1)
	}

	// indicate processed
	return true
}

// get the first argument as a directory name and prepend it to the
// supplied default file name
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
