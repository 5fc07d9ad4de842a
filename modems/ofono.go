// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package modems

import (
	"github.com/godbus/dbus/v5"
	"golang.org/x/xerrors"
)

const (
	ofonoService      = "org.ofono"
	ofonoManagerPath  = dbus.ObjectPath("/")
	ofonoManagerIfc   = "org.ofono.Manager"
	ofonoModemIfc     = "org.ofono.Modem"
	ofonoNetRegIfc    = "org.ofono.NetworkRegistration"
	ofonoGetModems    = ofonoManagerIfc + ".GetModems"
	ofonoGetNetProps  = ofonoNetRegIfc + ".GetProperties"
	ofonoGetModemProp = ofonoModemIfc + ".GetProperties"
)

// GetModems returns a(oa{sv})
type ofonoModemEntry struct {
	Path  dbus.ObjectPath
	Props map[string]dbus.Variant
}

// probeOfono enumerates oFono modems and reads the identity of the first
// one. Enumeration failures mean the backend is absent; failures after a
// modem has been selected are real errors and propagate.
func probeOfono(conn *dbus.Conn) (*Properties, error) {
	var modemList []ofonoModemEntry
	err := conn.Object(ofonoService, ofonoManagerPath).Call(ofonoGetModems, 0).Store(&modemList)
	if err != nil {
		return nil, xerrors.Errorf("failed to enumerate modems (%v): %w", err, errBackendAbsent)
	}
	if len(modemList) == 0 {
		return nil, xerrors.Errorf("no modems enumerated: %w", errBackendAbsent)
	}

	modemPath := modemList[0].Path
	logger.Debug("found oFono modem:", modemPath)
	obj := conn.Object(ofonoService, modemPath)

	var netProps map[string]dbus.Variant
	err = obj.Call(ofonoGetNetProps, 0).Store(&netProps)
	if err != nil {
		return nil, xerrors.Errorf("failed to get network registration properties of %s: %w",
			modemPath, err)
	}

	var modemProps map[string]dbus.Variant
	err = obj.Call(ofonoGetModemProp, 0).Store(&modemProps)
	if err != nil {
		return nil, xerrors.Errorf("failed to get modem properties of %s: %w", modemPath, err)
	}

	return &Properties{
		Operator: variantString(netProps, "Name"),
		Serial:   variantString(modemProps, "Serial"),
		MCC:      variantString(netProps, "MobileCountryCode"),
		MNC:      variantString(netProps, "MobileNetworkCode"),
	}, nil
}
