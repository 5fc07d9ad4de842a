// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package capabilities

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/postmarketos/obex-capabilities/modems"
)

func setMachineID(t *testing.T, id string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine-id")
	err := os.WriteFile(path, []byte(id+"\n"), 0644)
	require.NoError(t, err)
	t.Setenv("MACHINE_ID_PATH", path)
}

func Test_newIdentity_NoModem(t *testing.T) {
	setMachineID(t, "abc-123")

	ident, err := newIdentity(nil)
	require.NoError(t, err)
	assert.False(t, ident.HasModem)
	assert.Equal(t, "abc-123", ident.DeviceID)
	assert.Empty(t, ident.CarrierName)
	assert.Empty(t, ident.MCC)
	assert.Empty(t, ident.MNC)

	doc := Render(ident)
	assert.Contains(t, doc, "<general-info SN=\"abc-123\"/>")
	assert.NotContains(t, doc, "<net ")
}

func Test_newIdentity_NoMachineID(t *testing.T) {
	t.Setenv("MACHINE_ID_PATH", filepath.Join(t.TempDir(), "missing"))

	ident, err := newIdentity(nil)
	require.Error(t, err)
	assert.Nil(t, ident)
}

func Test_newIdentity_RegisteredModem(t *testing.T) {
	ident, err := newIdentity(&modems.Properties{
		Operator: "Carrier X",
		Serial:   "0123456789",
		MCC:      "310",
		MNC:      "260",
	})
	require.NoError(t, err)
	assert.True(t, ident.HasModem)
	assert.Equal(t, "0123456789", ident.DeviceID)
	assert.Equal(t, "Carrier X", ident.CarrierName)
	assert.Equal(t, "310", ident.MCC)
	assert.Equal(t, "260", ident.MNC)
}

func Test_newIdentity_EmptyOperatorSuppressesGroup(t *testing.T) {
	ident, err := newIdentity(&modems.Properties{
		Serial: "999",
		MCC:    "310",
		MNC:    "260",
	})
	require.NoError(t, err)
	assert.True(t, ident.HasModem)
	assert.Equal(t, "999", ident.DeviceID)
	assert.Empty(t, ident.CarrierName)
	assert.Empty(t, ident.MCC)
	assert.Empty(t, ident.MNC)
}

func Test_newIdentity_EmptySerialFallsBack(t *testing.T) {
	setMachineID(t, "abc-123")

	ident, err := newIdentity(&modems.Properties{Operator: "Carrier X"})
	require.NoError(t, err)
	assert.True(t, ident.HasModem)
	assert.Equal(t, "abc-123", ident.DeviceID)
	assert.Equal(t, "Carrier X", ident.CarrierName)
}

// The carrier group must be atomic for any combination of backend output:
// an empty carrier name means MCC and MNC are empty too.
func Test_newIdentity_GroupInvariant(t *testing.T) {
	setMachineID(t, "abc-123")

	rnd := rand.New(rand.NewSource(1))
	pick := func(values ...string) string {
		return values[rnd.Intn(len(values))]
	}
	for i := 0; i < 200; i++ {
		props := &modems.Properties{
			Operator: pick("", "Carrier X", "R&D \"Mobile\""),
			Serial:   pick("", "0123456789"),
			MCC:      pick("", "310"),
			MNC:      pick("", "260", "26"),
		}
		ident, err := newIdentity(props)
		require.NoError(t, err)
		assert.NotEmpty(t, ident.DeviceID)
		if ident.CarrierName == "" {
			assert.Empty(t, ident.MCC)
			assert.Empty(t, ident.MNC)
			assert.NotContains(t, Render(ident), "<net ")
		}
	}
}
