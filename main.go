// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/xj361685640/IBAMR/fem"
	"github.com/xj361685640/IBAMR/inp"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.WorldRank() == 0 {
				io.PfRed("\nERROR: %v", err)
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop()
	}()
	mpi.Start()

	// runtime options such as -ksp_rtol=1e-10 are removed before reading positional arguments
	rest := inp.ParseOptions(os.Args[1:])
	os.Args = append(os.Args[:1], rest...)

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	allowParallel := io.ArgToBool(3, true)

	// message
	if mpi.WorldRank() == 0 && verbose {
		io.PfWhite("\nibproj -- L2 projection onto finite element spaces\n")
		io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"allow parallel run", "allowParallel", allowParallel,
		))
		if opts := inp.ListOptions(); opts != "" {
			io.Pf("runtime options:\n%v\n", opts)
		}
	}

	// projections
	main, err := fem.NewMain(fnamepath, "", erasePrev, allowParallel, verbose)
	if err != nil {
		chk.Panic("NewMain failed:\n%v", err)
	}

	// run
	err = main.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
