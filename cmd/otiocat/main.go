// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

// otiocat reads a timeline file, decodes it, and re-emits it as JSON on
// stdout. It exists as a minimal external collaborator exercising the
// codec package end to end.
//
// Usage:
//
//	otiocat <path>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/rkoesters/otioframe/codec"
	"github.com/rkoesters/otioframe/internal/iosource"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, iosource.OS))
}

func run(args []string, stdout, stderr io.Writer, fsys iosource.FileSystem) int {
	logger := zerolog.New(stderr).With().Timestamp().Str("cmd", "otiocat").Logger()

	fs := flag.NewFlagSet("otiocat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: otiocat <path>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	rest := fs.Args()
	if len(rest) != 1 {
		fs.Usage()
		return 2
	}
	path := rest[0]

	data, err := fsys.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("failed to read timeline file")
		return 1
	}

	obj, err := codec.Unmarshal(data)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msgf("failed to deserialize timeline: %+v", err)
		return 1
	}

	out, err := codec.Marshal(obj)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msgf("failed to re-serialize timeline: %+v", err)
		return 1
	}

	fmt.Fprintln(stdout, string(out))
	return 0
}
