// SPDX-License-Identifier: GPL-3.0-or-later

// Package prtg implements the PRTG EXE/Script Advanced sensor result document.
//
// A sensor run produces exactly one document: either a list of channel
// results with an optional text, or an error indicator with a message.
// https://www.paessler.com/manuals/prtg/custom_sensors#command_line
package prtg

import (
	"encoding/json"
	"io"
)

// Unit is a PRTG channel unit.
type Unit string

const (
	UnitBytesDisk    Unit = "BytesDisk"
	UnitCount        Unit = "Count"
	UnitCustom       Unit = "Custom"
	UnitPercent      Unit = "Percent"
	UnitSpeedDisk    Unit = "SpeedDisk"
	UnitTimeResponse Unit = "TimeResponse"
)

// Result is a single channel entry of the sensor document.
type Result struct {
	Channel         string   `json:"Channel"`
	Value           float64  `json:"Value"`
	Unit            Unit     `json:"Unit,omitempty"`
	CustomUnit      string   `json:"CustomUnit,omitempty"`
	Float           int      `json:"Float,omitempty"`
	ValueLookup     string   `json:"ValueLookup,omitempty"`
	LimitMode       int      `json:"LimitMode,omitempty"`
	LimitMaxWarning *float64 `json:"LimitMaxWarning,omitempty"`
	LimitMaxError   *float64 `json:"LimitMaxError,omitempty"`
}

type sensor struct {
	Results []Result `json:"result,omitempty"`
	Text    string   `json:"text,omitempty"`
	Error   int      `json:"error,omitempty"`
}

// Document is the top-level sensor result document.
type Document struct {
	Sensor sensor `json:"prtg"`
}

// New returns an empty success document.
func New() *Document {
	return &Document{}
}

// NewError returns an error document with the given message.
// PRTG shows the sensor as down with the message as the sensor status text.
func NewError(text string) *Document {
	return &Document{Sensor: sensor{Error: 1, Text: text}}
}

// Add appends a channel result.
func (d *Document) Add(r Result) {
	d.Sensor.Results = append(d.Sensor.Results, r)
}

// SetText sets the sensor status text.
func (d *Document) SetText(text string) {
	d.Sensor.Text = text
}

// Results returns the channel results.
func (d *Document) Results() []Result {
	return d.Sensor.Results
}

// IsError reports whether the document carries an error indicator.
func (d *Document) IsError() bool {
	return d.Sensor.Error != 0
}

// Write writes the document as JSON.
func (d *Document) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Limits returns LimitMaxWarning/LimitMaxError values for a Result literal.
func Limits(warning, critical float64) (*float64, *float64) {
	return &warning, &critical
}
