// SPDX-FileCopyrightText: 2024 obex-capabilities contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package capabilities

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Render serializes an identity into the OBEX capabilities document
// consumed by obexd. The schema is fixed; the net element is present only
// when a modem is registered on a named network. Identical input yields
// byte-identical output.
func Render(ident *NetworkIdentity) string {
	var buf bytes.Buffer
	buf.WriteString("<object-capabilities>\n")
	fmt.Fprintf(&buf, "  <general-info SN=\"%s\"/>\n", escapeAttr(ident.DeviceID))
	if ident.HasModem && ident.CarrierName != "" {
		fmt.Fprintf(&buf, "  <net operator-name=\"%s\" mcc=\"%s\" mnc=\"%s\"/>\n",
			escapeAttr(ident.CarrierName), escapeAttr(ident.MCC), escapeAttr(ident.MNC))
	}
	buf.WriteString("</object-capabilities>\n")
	return buf.String()
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	// bytes.Buffer writes cannot fail
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
