// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prtg-sensors/flasharray/cli"
	"github.com/prtg-sensors/flasharray/flasharray"
	"github.com/prtg-sensors/flasharray/logger"
	"github.com/prtg-sensors/flasharray/pkg/buildinfo"
	"github.com/prtg-sensors/flasharray/pkg/filelock"
	"github.com/prtg-sensors/flasharray/pkg/prtg"
	"github.com/prtg-sensors/flasharray/pkg/web"
	"github.com/prtg-sensors/flasharray/prtgapi"
	"github.com/prtg-sensors/flasharray/scope"
	"github.com/prtg-sensors/flasharray/sensorstore"
)

var log = logger.New().With(slog.String("component", "main"))

func main() {
	opts := parseCLI()

	if opts.Version {
		fmt.Printf("flasharray-sensor, version: %s\n", buildinfo.Version)
		return
	}

	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "flasharray-sensor: %v\n", err)
		os.Exit(1)
	}

	doc, err := run(opts)
	if err != nil {
		// PRTG reads the error document from stdout and shows the sensor as down
		log.Errorf("scope '%s' failed: %v", opts.Scope, err)
		_ = prtg.NewError(err.Error()).Write(os.Stdout)
		os.Exit(2)
	}

	if err := doc.Write(os.Stdout); err != nil {
		log.Errorf("write document: %v", err)
		os.Exit(2)
	}
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	return opt
}

func run(opts *cli.Option) (*prtg.Document, error) {
	client, err := flasharray.New(
		web.ClientConfig{Timeout: opts.Timeout},
		web.RequestConfig{URL: opts.URL, Username: opts.Username, Password: opts.Password},
		opts.APIToken,
	)
	if err != nil {
		return nil, fmt.Errorf("create array client: %w", err)
	}

	switch opts.Scope {
	case cli.ScopeCapacity:
		return scope.Capacity(client)
	case cli.ScopePerformance:
		return scope.Performance(client)
	case cli.ScopeHardware:
		return scope.Hardware(client)
	case cli.ScopeDrive:
		return scope.Drive(client)
	case cli.ScopeVolume:
		return scope.Volume(client, opts.Volume)
	case cli.ScopeVolumeMgmt:
		return runVolumeMgmt(opts, client)
	default:
		return nil, fmt.Errorf("unknown scope '%s'", opts.Scope)
	}
}

// runVolumeMgmt wires up the store and the provisioning client, then runs
// the reconciliation under a per-array file lock. Two reconciliation runs
// against the same array would race on the store and clone sensors twice.
func runVolumeMgmt(opts *cli.Option, client *flasharray.Client) (*prtg.Document, error) {
	info, err := client.ArrayInfo()
	if err != nil {
		return nil, fmt.Errorf("query array info: %w", err)
	}

	if err := os.MkdirAll(opts.StateDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", sensorstore.ErrStoreUnavailable, err)
	}

	locker := filelock.New(opts.StateDir)
	ok, err := locker.Lock(info.ArrayName)
	if err != nil {
		return nil, fmt.Errorf("lock array '%s': %w", info.ArrayName, err)
	}
	if !ok {
		return nil, fmt.Errorf("another run for array '%s' is in progress", info.ArrayName)
	}
	defer locker.Unlock(info.ArrayName)

	store, err := sensorstore.Open(opts.StateDir, info.ArrayName)
	if err != nil {
		return nil, err
	}

	prtgClient, err := prtgapi.New(
		web.ClientConfig{Timeout: opts.Timeout},
		web.RequestConfig{URL: opts.PRTGURL, Username: opts.PRTGUser},
		opts.PRTGPassHash,
	)
	if err != nil {
		return nil, fmt.Errorf("create prtg client: %w", err)
	}

	backend := prtgapi.NewProvisioner(prtgClient, opts.TemplateID, opts.GroupID)

	return scope.VolumeMgmt(client, backend, store)
}
