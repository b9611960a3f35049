// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/balance"
	"github.com/bitmark-inc/menagerie/collectible"
	"github.com/bitmark-inc/menagerie/counter"
	"github.com/bitmark-inc/menagerie/ident"
	"github.com/bitmark-inc/menagerie/market"
	"github.com/bitmark-inc/menagerie/rpc/certificate"
	"github.com/bitmark-inc/menagerie/rpc/listeners"
	"github.com/bitmark-inc/menagerie/rpc/server"
	"github.com/bitmark-inc/menagerie/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Market", theConfiguration.Market)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// identifier allocation
	log.Info("initialise ident")
	err = ident.Initialise(storage.Pool.Control)
	if nil != err {
		log.Criticalf("ident initialise error: %s", err)
		exitwithstatus.Message("ident initialise error: %s", err)
	}
	defer ident.Finalise()

	// collectible registry
	log.Info("initialise collectible")
	err = collectible.Initialise(
		storage.Pool.Collectibles,
		storage.Pool.OwnerNextCount,
		storage.Pool.OwnerList,
		storage.Pool.OwnerIndex,
	)
	if nil != err {
		log.Criticalf("collectible initialise error: %s", err)
		exitwithstatus.Message("collectible initialise error: %s", err)
	}
	defer collectible.Finalise()

	// token ledger
	issuer, err := account.AccountFromBase58(theConfiguration.Token.Issuer)
	if nil != err {
		log.Criticalf("token issuer: %q error: %s", theConfiguration.Token.Issuer, err)
		exitwithstatus.Message("token issuer: %q error: %s", theConfiguration.Token.Issuer, err)
	}
	ledger := balance.NewLedger(issuer, theConfiguration.Token.Supply)

	// marketplace
	log.Info("initialise market")
	err = market.Initialise(storage.Pool.Listings, storage.Pool.Deposits, ledger, theConfiguration.Market)
	if nil != err {
		log.Criticalf("market initialise error: %s", err)
		exitwithstatus.Message("market initialise error: %s", err)
	}
	defer market.Finalise()

	// client RPC
	log.Info("initialise rpc")
	certificatePEM, err := ioutil.ReadFile(theConfiguration.ClientRPC.Certificate)
	if nil != err {
		log.Criticalf("certificate: %q error: %s", theConfiguration.ClientRPC.Certificate, err)
		exitwithstatus.Message("certificate: %q error: %s", theConfiguration.ClientRPC.Certificate, err)
	}
	keyPEM, err := ioutil.ReadFile(theConfiguration.ClientRPC.PrivateKey)
	if nil != err {
		log.Criticalf("private key: %q error: %s", theConfiguration.ClientRPC.PrivateKey, err)
		exitwithstatus.Message("private key: %q error: %s", theConfiguration.ClientRPC.PrivateKey, err)
	}

	rpcLog := logger.New("client_rpc")
	tlsConfiguration, fingerprint, err := certificate.Get(rpcLog, "client_rpc", string(certificatePEM), string(keyPEM))
	if nil != err {
		log.Criticalf("certificate get error: %s", err)
		exitwithstatus.Message("certificate get error: %s", err)
	}

	rpcCount := counter.Counter(0)
	connectionCount := counter.Counter(0)

	rpcServer := server.Create(rpcLog, version, &rpcCount)
	rpcListener, err := listeners.NewRPC(
		&theConfiguration.ClientRPC,
		rpcLog,
		&connectionCount,
		rpcServer,
		tlsConfiguration,
		fingerprint,
	)
	if nil != err {
		log.Criticalf("rpc listener create error: %s", err)
		exitwithstatus.Message("rpc listener create error: %s", err)
	}
	err = rpcListener.Serve()
	if nil != err {
		log.Criticalf("rpc listener serve error: %s", err)
		exitwithstatus.Message("rpc listener serve error: %s", err)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("waiting for CTRL-C (SIGINT) or 'kill %d' (SIGTERM)…\n", os.Getpid())
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("received signal: %v\n", sig)
		fmt.Println("shutting down…")
	}

	log.Info("shutting down…")
}
