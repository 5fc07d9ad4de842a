// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package device reads the stable machine identifier used as the device
// serial when no modem is present.
package device

import (
	"os"
	"strings"

	"github.com/jouyouyun/hardware/dmi"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/xerrors"
)

var logger = log.NewLogger("obex-capabilities/device")

const (
	machineIDFile     = "/etc/machine-id"
	dbusMachineIDFile = "/var/lib/dbus/machine-id"
)

// MachineID returns a stable system-wide identifier. It reads
// /etc/machine-id, then the dbus machine-id, then falls back to the DMI
// product UUID for systems without a machine-id (containers, first boot).
// The MACHINE_ID_PATH environment variable overrides the whole chain.
func MachineID() (string, error) {
	if path := os.Getenv("MACHINE_ID_PATH"); path != "" {
		return readID(path)
	}

	id, err := readID(machineIDFile)
	if err == nil {
		return id, nil
	}
	logger.Debug("failed to read machine-id:", err)

	id, err2 := readID(dbusMachineIDFile)
	if err2 == nil {
		return id, nil
	}
	logger.Debug("failed to read dbus machine-id:", err2)

	info, err3 := dmi.GetDMI()
	if err3 == nil && info.ProductUUID != "" {
		return info.ProductUUID, nil
	}

	return "", xerrors.Errorf("no machine identifier available: %v", err)
}

func readID(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(string(content))
	if id == "" {
		return "", xerrors.Errorf("machine id file %s is empty", path)
	}
	return id, nil
}
