// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/menagerie/util"
)

func TestEnsureAbsolute(t *testing.T) {
	testData := []struct {
		directory string
		filePath  string
		expected  string
	}{
		{"/data", "file.dat", "/data/file.dat"},
		{"/data", "/other/file.dat", "/other/file.dat"},
		{"/data", "sub/../file.dat", "/data/file.dat"},
	}

	for i, item := range testData {
		actual := util.EnsureAbsolute(item.directory, item.filePath)
		if item.expected != actual {
			t.Errorf("%d: actual: %q  expected: %q", i, actual, item.expected)
		}
	}
}

func TestEnsureFileExists(t *testing.T) {
	file, err := ioutil.TempFile("", "test-exists")
	if nil != err {
		t.Fatalf("temp file error: %s", err)
	}
	name := file.Name()
	_ = file.Close()
	defer os.Remove(name)

	if !util.EnsureFileExists(name) {
		t.Errorf("missing file: %q", name)
	}
	if util.EnsureFileExists(filepath.Join(os.TempDir(), "no-such-file")) {
		t.Error("nonexistent file reported present")
	}
}
