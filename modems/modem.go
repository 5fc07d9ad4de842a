// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package modems discovers a cellular modem over the system bus and reads
// its network identity. Two backends are supported, oFono and ModemManager;
// at most one of them owns a bus name on a given system.
package modems

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("obex-capabilities/modems")

// Properties is the uniform shape both backends are normalized to.
// Fields not reported by the backend are left empty.
type Properties struct {
	// Operator is the name of the network the modem is registered on.
	Operator string
	// Serial is the hardware identifier of the modem (IMEI).
	Serial string
	// MCC and MNC identify the registered network. ModemManager reports
	// them combined; they are split before they leave this package.
	MCC string
	MNC string
}

// errBackendAbsent marks a backend that is not usable on this system:
// the service does not own its bus name, the bus itself is unreachable,
// or the service reports no modems. The selector falls through to the
// next backend on this error and never surfaces it.
var errBackendAbsent = xerrors.New("modem backend absent")

// variantString reads a string value out of a D-Bus property map,
// yielding "" for missing keys or non-string values.
func variantString(props map[string]dbus.Variant, key string) string {
	v, ok := props[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}
