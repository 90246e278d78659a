// SPDX-License-Identifier: GPL-3.0-or-later

// Package cli parses the sensor command line and the optional YAML config
// file. Flags win over config file values; the file only fills in what the
// command line left empty.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v2"

	"github.com/prtg-sensors/flasharray/pkg/confopt"
)

// Scopes a run can execute.
const (
	ScopeCapacity    = "capacity"
	ScopePerformance = "performance"
	ScopeHardware    = "hardware"
	ScopeDrive       = "drive"
	ScopeVolume      = "volume"
	ScopeVolumeMgmt  = "volumemgmt"
)

// Option defines command line options.
type Option struct {
	URL      string `short:"H" long:"url" description:"array API base URL" yaml:"url"`
	Username string `short:"u" long:"username" description:"array username" yaml:"username"`
	Password string `short:"p" long:"password" description:"array password" yaml:"password"`
	APIToken string `short:"k" long:"api-token" description:"array API token (preferred over username/password)" yaml:"api_token"`

	Scope  string `short:"s" long:"scope" description:"scope to run" choice:"capacity" choice:"performance" choice:"hardware" choice:"drive" choice:"volume" choice:"volumemgmt" default:"capacity" yaml:"scope"`
	Volume string `long:"volume" description:"volume name (scope=volume)" yaml:"volume"`

	PRTGURL      string `long:"prtg-url" description:"PRTG server base URL (scope=volumemgmt)" yaml:"prtg_url"`
	PRTGUser     string `long:"prtg-user" description:"PRTG username (scope=volumemgmt)" yaml:"prtg_user"`
	PRTGPassHash string `long:"prtg-passhash" description:"PRTG passhash (scope=volumemgmt)" yaml:"prtg_passhash"`
	TemplateID   string `long:"template-id" description:"sensor object id to clone (scope=volumemgmt)" yaml:"template_id"`
	GroupID      string `long:"group-id" description:"device object id to clone into (scope=volumemgmt)" yaml:"group_id"`
	StateDir     string `long:"state-dir" description:"sensor store directory" default:"/var/lib/flasharray-sensor" yaml:"state_dir"`

	Timeout    confopt.Duration `short:"t" long:"timeout" description:"HTTP timeout" yaml:"timeout"`
	ConfigFile string           `short:"c" long:"config" description:"YAML config file" yaml:"-"`
	Debug      bool             `short:"d" long:"debug" description:"debug mode" yaml:"-"`
	Version    bool             `short:"v" long:"version" description:"display the version and exit" yaml:"-"`
}

// Parse returns parsed command-line flags in Option struct, with values
// from the config file (if any) filled in underneath.
func Parse(args []string) (*Option, error) {
	opt := &Option{
		Timeout: confopt.Duration(time.Second * 10),
	}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "flasharray-sensor"
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if opt.ConfigFile != "" {
		if err := opt.mergeConfigFile(opt.ConfigFile); err != nil {
			return nil, err
		}
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}

// Validate checks that the options are sufficient to run the scope.
func (o *Option) Validate() error {
	if o.URL == "" {
		return errors.New("array URL is required")
	}
	if o.APIToken == "" && (o.Username == "" || o.Password == "") {
		return errors.New("either an api token or username and password are required")
	}

	switch o.Scope {
	case ScopeCapacity, ScopePerformance, ScopeHardware, ScopeDrive:
	case ScopeVolume:
		if o.Volume == "" {
			return errors.New("scope 'volume' requires --volume")
		}
	case ScopeVolumeMgmt:
		switch {
		case o.PRTGURL == "":
			return errors.New("scope 'volumemgmt' requires --prtg-url")
		case o.PRTGUser == "" || o.PRTGPassHash == "":
			return errors.New("scope 'volumemgmt' requires --prtg-user and --prtg-passhash")
		case o.TemplateID == "" || o.GroupID == "":
			return errors.New("scope 'volumemgmt' requires --template-id and --group-id")
		}
	default:
		return fmt.Errorf("unknown scope '%s'", o.Scope)
	}

	return nil
}

// mergeConfigFile fills empty options from the YAML config file.
// Set flags always win.
func (o *Option) mergeConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file Option
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file '%s': %w", path, err)
	}

	setIfEmpty(&o.URL, file.URL)
	setIfEmpty(&o.Username, file.Username)
	setIfEmpty(&o.Password, file.Password)
	setIfEmpty(&o.APIToken, file.APIToken)
	setIfEmpty(&o.Volume, file.Volume)
	setIfEmpty(&o.PRTGURL, file.PRTGURL)
	setIfEmpty(&o.PRTGUser, file.PRTGUser)
	setIfEmpty(&o.PRTGPassHash, file.PRTGPassHash)
	setIfEmpty(&o.TemplateID, file.TemplateID)
	setIfEmpty(&o.GroupID, file.GroupID)

	return nil
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
