// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// GetConstraintFlags parses the extra (keycode) data of a constraint
//  Keycodes:
//   !tol:1e-8  -- tolerance on the distance between matching vertices (periodic)
//   !ndiv:20   -- number of bins along each direction used in the search (periodic)
func GetConstraintFlags(extra string) (tol float64, ndiv int, err error) {

	// defaults
	tol = 1e-8
	ndiv = 20
	if extra == "" {
		return
	}
	if extra[0] != '!' {
		err = chk.Err("extra data %q must be in keycode format; e.g. \"!tol:1e-8\"", extra)
		return
	}

	// tolerance
	if s_tol, found := io.Keycode(extra, "tol"); found {
		tol, err = strconv.ParseFloat(s_tol, 64)
		if err != nil || tol <= 0 {
			return 0, 0, chk.Err("tolerance in keycode %q is invalid", extra)
		}
	}

	// bins
	if s_ndiv, found := io.Keycode(extra, "ndiv"); found {
		ndiv, err = strconv.Atoi(s_ndiv)
		if err != nil || ndiv < 1 {
			return 0, 0, chk.Err("number of divisions in keycode %q is invalid", extra)
		}
	}
	return
}
