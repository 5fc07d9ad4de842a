// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linuxdeepin/go-lib/log"

	"gitlab.com/postmarketos/obex-capabilities/capabilities"
)

var logger = log.NewLogger("obex-capabilities")

const debugUsage = "Enable debug logging"

var optDebug bool

func init() {
	flag.BoolVar(&optDebug, "debug", false, debugUsage)
	flag.BoolVar(&optDebug, "d", false, debugUsage)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-debug] <output-file>\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Generate an OBEX capabilities document for obexd.")
	fmt.Fprintln(os.Stderr, "Pass '-' as output file to write to stdout.")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if optDebug {
		logger.SetLogLevel(log.LevelDebug)
	}

	output := flag.Arg(0)
	if output == "" {
		usage()
		os.Exit(2)
	}

	ident, err := capabilities.Resolve()
	if err != nil {
		logger.Error("failed to resolve network identity:", err)
		os.Exit(1)
	}
	doc := capabilities.Render(ident)

	if output == "-" {
		fmt.Print(doc)
		return
	}
	err = writeCapabilities(output, doc)
	if err != nil {
		logger.Error("failed to write capabilities:", err)
		os.Exit(1)
	}
}

// writeCapabilities writes the document through a temporary file so a
// failure never leaves a partial document at the destination.
func writeCapabilities(filename, content string) error {
	err := os.MkdirAll(filepath.Dir(filename), 0755)
	if err != nil {
		return err
	}

	tmpFile := filename + ".tmp"
	err = os.WriteFile(tmpFile, []byte(content), 0644)
	if err != nil {
		return err
	}

	err = os.Rename(tmpFile, filename)
	if err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return nil
}
