// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package collectible

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/menagerie/account"
	"github.com/bitmark-inc/menagerie/ident"
)

// Record - one entry of an owner's collectible list
type Record struct {
	N  uint64           `json:"n,string"`
	Id ident.Identifier `json:"id,string"`
}

// ListFor - fetch a page of collectibles for an owner
//
// start is the list position to resume from; the returned records
// carry their positions so a caller can page through large holdings
func ListFor(owner account.Account, start uint64, count int) ([]Record, error) {

	startBytes := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(startBytes, start)

	ownerBytes := owner.Bytes()
	prefix := append(ownerBytes, startBytes...)

	cursor := globalData.ownerList.NewFetchCursor().Seek(prefix)

	// owner ⧺ count → id
	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	records := make([]Record, 0, len(items))

loop:
	for _, item := range items {
		n := len(item.Key)
		split := n - uint64ByteSize
		if split <= 0 {
			logger.Panicf("split cannot be <= 0: %d", split)
		}
		itemOwner := item.Key[:split]
		if !bytes.Equal(ownerBytes, itemOwner) {
			break loop
		}

		id, err := ident.IdentifierFromBytes(item.Value)
		if nil != err {
			return nil, err
		}

		records = append(records, Record{
			N:  binary.BigEndian.Uint64(item.Key[split:]),
			Id: id,
		})
	}

	return records, nil
}
