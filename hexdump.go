package droidlink

import (
	"fmt"
	"strings"
)

// formatFrameHex renders frame bytes for the debug log, each byte tagged
// with its index: "01[00] 01[01] 05[02] 5F[03]".
func formatFrameHex(data []byte) string {
	if len(data) == 0 {
		return "<empty>"
	}
	var b strings.Builder
	for i, v := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X[%02d]", v, i)
	}
	return b.String()
}
