// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import "errors"

// ErrWriteFailed is returned when the underlying sink accepted fewer
// bytes than were requested.
var ErrWriteFailed = errors.New("archive: write failed")

// ErrReadFailed is returned when the underlying source delivered fewer
// bytes than requested, a decoded string was not valid UTF-8, or a
// tagged-union discriminator did not name a known variant.
var ErrReadFailed = errors.New("archive: read failed")

// ErrIncompatibleArchiver is returned by ReadRoot when the archive's
// encodingVersion header field is not the version this package writes.
var ErrIncompatibleArchiver = errors.New("archive: incompatible archiver version")

const encodingVersion int64 = 1
