// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database with prefixed keys so that
// several logical pools can share one store
//
// Collectibles:
//
//   C ⧺ id               - the collectible record
//                          data: sequence ⧺ owner
//
// Ownership index:
//
//   N ⧺ owner            - next count value to use for appending to owned items
//                          data: count
//   L ⧺ owner ⧺ count    - list of owned items
//                          data: id
//   D ⧺ owner ⧺ id       - position in list of owned items, for delete after transfer
//                          data: count
//
// Marketplace:
//
//   M ⧺ id               - listing, present only while the item is for sale
//                          data: price ⧺ seller
//   P ⧺ id               - deposit back-reference, present while a reserve is outstanding
//                          data: amount ⧺ depositor
//
// Control:
//
//   K ⧺ name             - module control values e.g. the identifier allocator counter
//                          data: value
//
// all writes are staged into a single batch through the Transaction
// interface and become durable on Commit; reads go through a
// write-back cache so staged values are visible before the commit
package storage
