// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	azcorelog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
	"github.com/azure/funcprov/cli/funcprov/cmd"
	"github.com/azure/funcprov/cli/funcprov/internal"
	"github.com/azure/funcprov/cli/funcprov/internal/tracing"
	"github.com/azure/funcprov/cli/funcprov/pkg/osutil"
	"github.com/azure/funcprov/cli/funcprov/pkg/output"
	"github.com/mattn/go-colorable"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	restoreColorMode := colorable.EnableColorsStdout(nil)
	defer restoreColorMode()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	opts := earlyOptions()
	if opts.EnableDebugLogging {
		azcorelog.SetListener(func(event azcorelog.Event, msg string) {
			log.Printf("%s: %s\n", event, msg)
		})
	} else {
		log.SetOutput(io.Discard)
	}

	if opts.TraceLogFile != "" {
		shutdown, err := startTracing(opts.TraceLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, output.WithErrorFormat("ERROR: %s", err.Error()))
			return 1
		}
		defer shutdown()
	}

	rootCmd := cmd.NewRootCmd(os.Stdout, nil)
	executed, cmdErr := rootCmd.ExecuteContextC(ctx)
	if cmdErr == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, output.WithErrorFormat("\nERROR: %s", cmdErr.Error()))

	var errWithSuggestion *internal.ErrorWithSuggestion
	if errors.As(cmdErr, &errWithSuggestion) {
		fmt.Fprintln(os.Stderr, errWithSuggestion.Suggestion)
	}

	var usageErr *internal.UsageError
	if errors.As(cmdErr, &usageErr) {
		if executed == nil {
			executed = rootCmd
		}
		fmt.Fprintln(os.Stderr)
		executed.SetOut(os.Stderr)
		_ = executed.Usage()
	} else if !opts.EnableDebugLogging {
		fmt.Fprintln(os.Stderr, output.WithGrayFormat("Run again with --debug to log every az command."))
	}

	return 1
}

// earlyOptions parses the global flags that must take effect before the command tree is built.
func earlyOptions() internal.GlobalCommandOptions {
	opts := internal.GlobalCommandOptions{}
	help := false
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)

	// The full command line is parsed here, so flags of the actual command are unknown to this set.
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.BoolVar(&opts.EnableDebugLogging, "debug", false, "")
	flags.StringVar(&opts.TraceLogFile, "trace-log-file", "", "")

	// pflag returns ErrHelp for an undefined --help flag.
	flags.BoolVarP(&help, "help", "h", false, "")
	flags.SetOutput(io.Discard)

	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Printf("could not parse flags: %v", err)
	}

	return opts
}

func startTracing(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, osutil.PermissionFile)
	if err != nil {
		return nil, fmt.Errorf("opening trace log file: %w", err)
	}

	tp, err := tracing.NewFileTracerProvider(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("failed to flush traces: %v", err)
		}
		f.Close()
	}, nil
}
