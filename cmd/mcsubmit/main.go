// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package main

import (
	"log"
	"os"

	"github.com/gvallee/go_util/pkg/util"
)

func main() {
	logFile := util.OpenLogFile("mcsubmit")
	defer logFile.Close()
	log.SetOutput(logFile)

	err := newRootCmd(logFile).Execute()
	if err != nil {
		os.Exit(1)
	}
}
