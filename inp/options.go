// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// options holds process-wide runtime overrides; e.g. "ksp_rtol" => "1e-10"
var options = make(map[string]string)

// SetOption sets (or replaces) a runtime option
func SetOption(key, value string) {
	options[strings.TrimLeft(key, "-")] = value
}

// ClearOptions removes all runtime options
func ClearOptions() {
	options = make(map[string]string)
}

// HasOption tells whether a runtime option has been set
func HasOption(key string) bool {
	_, ok := options[key]
	return ok
}

// ParseOptions parses command line arguments in the "-key=value" or "-key" format.
// Arguments that do not start with '-' are returned in rest.
func ParseOptions(args []string) (rest []string) {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || len(arg) < 2 {
			rest = append(rest, arg)
			continue
		}
		kv := strings.SplitN(strings.TrimLeft(arg, "-"), "=", 2)
		if len(kv) == 1 {
			SetOption(kv[0], "true")
			continue
		}
		SetOption(kv[0], kv[1])
	}
	return
}

// GetReal returns a real option
//  found -- false if the option was not set; in this case val is meaningless
func GetReal(key string) (val float64, found bool, err error) {
	s, found := options[key]
	if !found {
		return
	}
	val, err = strconv.ParseFloat(s, 64)
	if err != nil {
		err = chk.Err("option %q = %q is not a real number", key, s)
	}
	return
}

// GetInt returns an integer option
func GetInt(key string) (val int, found bool, err error) {
	s, found := options[key]
	if !found {
		return
	}
	val, err = strconv.Atoi(s)
	if err != nil {
		err = chk.Err("option %q = %q is not an integer", key, s)
	}
	return
}

// GetString returns a string option or defaultValue if not set
func GetString(key, defaultValue string) string {
	if s, ok := options[key]; ok {
		return s
	}
	return defaultValue
}

// GetBool returns a boolean option or defaultValue if not set
func GetBool(key string, defaultValue bool) bool {
	if s, ok := options[key]; ok {
		return io.Atob(s)
	}
	return defaultValue
}

// ListOptions returns a simple listing of all options
func ListOptions() (l string) {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		l += io.Sf("  -%s=%s\n", key, options[key])
	}
	return
}
