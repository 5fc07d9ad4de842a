// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package modems

import (
	"os"

	"github.com/godbus/dbus/v5"
	"golang.org/x/xerrors"
)

type probe struct {
	name string
	fn   func(conn *dbus.Conn) (*Properties, error)
}

// oFono is preferred; ModemManager is the fallback.
var backends = []probe{
	{"ofono", probeOfono},
	{"modemmanager", probeModemManager},
}

// mockProperties is returned when MOCK_MODEM is set, for development
// machines without a modem.
var mockProperties = &Properties{
	Operator: "NetworkName",
	Serial:   "123456789012345",
	MCC:      "123",
	MNC:      "42",
}

// Guess tries each supported modem backend in order and returns the
// identity of the first modem found. A (nil, nil) return means no backend
// is usable on this system; that is a valid result, not an error. An
// error is returned only when a backend failed after a modem was already
// selected, since dropping data from a real modem on the floor is worse
// than failing.
func Guess(conn *dbus.Conn) (*Properties, error) {
	if os.Getenv("MOCK_MODEM") != "" {
		logger.Debug("MOCK_MODEM set, using mocked modem backend")
		return mockProperties, nil
	}
	return guess(conn, backends)
}

func guess(conn *dbus.Conn, probes []probe) (*Properties, error) {
	for _, p := range probes {
		logger.Debug("trying modem backend:", p.name)
		props, err := p.fn(conn)
		if err != nil {
			if xerrors.Is(err, errBackendAbsent) {
				logger.Debugf("backend %s not usable: %v", p.name, err)
				continue
			}
			return nil, xerrors.Errorf("%s: %w", p.name, err)
		}
		logger.Debug("using modem backend:", p.name)
		return props, nil
	}
	logger.Debug("no modem backend available")
	return nil, nil
}
