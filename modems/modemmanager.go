// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package modems

import (
	"sort"

	"github.com/godbus/dbus/v5"
	"golang.org/x/xerrors"
)

const (
	mmService = "org.freedesktop.ModemManager1"
	mmPath    = dbus.ObjectPath("/org/freedesktop/ModemManager1")
	mm3gppIfc = "org.freedesktop.ModemManager1.Modem.Modem3gpp"
	omGetAll  = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
	propGet   = "org.freedesktop.DBus.Properties.Get"
)

// probeModemManager enumerates ModemManager modems via the object manager
// and reads the identity of the first one. Paths are sorted so the choice
// is deterministic.
func probeModemManager(conn *dbus.Conn) (*Properties, error) {
	var managed map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	err := conn.Object(mmService, mmPath).Call(omGetAll, 0).Store(&managed)
	if err != nil {
		return nil, xerrors.Errorf("failed to enumerate modems (%v): %w", err, errBackendAbsent)
	}

	var modemPaths []string
	for path, ifaces := range managed {
		if _, ok := ifaces[mm3gppIfc]; ok {
			modemPaths = append(modemPaths, string(path))
		}
	}
	if len(modemPaths) == 0 {
		return nil, xerrors.Errorf("no modems enumerated: %w", errBackendAbsent)
	}
	sort.Strings(modemPaths)

	modemPath := dbus.ObjectPath(modemPaths[0])
	logger.Debug("found ModemManager modem:", modemPath)
	obj := conn.Object(mmService, modemPath)

	imei, err := getStringProp(obj, mm3gppIfc, "Imei")
	if err != nil {
		return nil, xerrors.Errorf("failed to get Imei of %s: %w", modemPath, err)
	}
	operator, err := getStringProp(obj, mm3gppIfc, "OperatorName")
	if err != nil {
		return nil, xerrors.Errorf("failed to get OperatorName of %s: %w", modemPath, err)
	}
	code, err := getStringProp(obj, mm3gppIfc, "OperatorCode")
	if err != nil {
		return nil, xerrors.Errorf("failed to get OperatorCode of %s: %w", modemPath, err)
	}
	mcc, mnc := splitOperatorCode(code)

	return &Properties{
		Operator: operator,
		Serial:   imei,
		MCC:      mcc,
		MNC:      mnc,
	}, nil
}

func getStringProp(obj dbus.BusObject, iface, prop string) (string, error) {
	var v dbus.Variant
	err := obj.Call(propGet, 0, iface, prop).Store(&v)
	if err != nil {
		return "", err
	}
	s, _ := v.Value().(string)
	return s, nil
}

// splitOperatorCode splits a combined 3GPP operator code (MCC followed by
// a 2 or 3 digit MNC, e.g. "310260") into its parts. Codes too short to
// contain both yield empty strings.
func splitOperatorCode(code string) (mcc, mnc string) {
	if len(code) < 4 {
		return "", ""
	}
	return code[:3], code[3:]
}
