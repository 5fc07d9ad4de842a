// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package capabilities resolves the network identity of this machine and
// renders it as an OBEX capabilities document.
package capabilities

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"

	"gitlab.com/postmarketos/obex-capabilities/device"
	"gitlab.com/postmarketos/obex-capabilities/modems"
)

var logger = log.NewLogger("obex-capabilities/capabilities")

// NetworkIdentity is the record advertised to obexd. CarrierName, MCC and
// MNC form one group: either the modem is registered on a named network
// and all three are set, or all three are empty. DeviceID is never empty.
type NetworkIdentity struct {
	CarrierName string
	DeviceID    string
	MCC         string
	MNC         string
	HasModem    bool
}

// Resolve queries the modem backends on the system bus and builds the
// identity record. An unreachable bus or missing backends degrade to the
// machine-identifier fallback; only a failure on an already selected
// modem, or the lack of any machine identifier, is an error.
func Resolve() (*NetworkIdentity, error) {
	var props *modems.Properties
	conn, err := dbus.SystemBus()
	if err != nil {
		logger.Warning("failed to connect to system bus:", err)
	} else {
		props, err = modems.Guess(conn)
		if err != nil {
			return nil, err
		}
	}
	return newIdentity(props)
}

func newIdentity(props *modems.Properties) (*NetworkIdentity, error) {
	if props == nil {
		id, err := device.MachineID()
		if err != nil {
			return nil, xerrors.Errorf("failed to read machine identifier: %w", err)
		}
		logger.Debug("no modem, using machine identifier:", id)
		return &NetworkIdentity{DeviceID: id}, nil
	}

	ident := &NetworkIdentity{
		DeviceID: props.Serial,
		HasModem: true,
	}
	if ident.DeviceID == "" {
		// A modem without a serial still needs a non-empty SN.
		id, err := device.MachineID()
		if err != nil {
			return nil, xerrors.Errorf("failed to read machine identifier: %w", err)
		}
		ident.DeviceID = id
	}
	// The operator name gates the whole network-info group.
	if props.Operator != "" {
		ident.CarrierName = props.Operator
		ident.MCC = props.MCC
		ident.MNC = props.MNC
	}
	return ident, nil
}
