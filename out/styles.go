// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// Styles holds one style per point
type Styles []plt.A

// GetDefaultStyles returns styles labelled by the coordinates of each point
func GetDefaultStyles(pts Points) Styles {
	sty := make([]plt.A, len(pts))
	for i, p := range pts {
		sty[i].L = io.Sf("x=%v", p.X)
	}
	return sty
}

// GetTexLabel returns a TeX label for variable key
func GetTexLabel(key, unit string) string {
	l := "$"
	switch key {
	case "ux":
		l += "u_x"
	case "uy":
		l += "u_y"
	case "uz":
		l += "u_z"
	case "dist":
		l += "d"
	case "":
		return ""
	default:
		l += key
	}
	if unit != "" {
		l += "\\;" + unit
	}
	l += "$"
	return l
}
