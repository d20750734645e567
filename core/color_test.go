package core

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/smallsh/core/config"
	"github.com/stretchr/testify/assert"
)

func TestColorPrinter(t *testing.T) {
	cases := map[string]struct {
		mode      string
		wantColor bool
	}{
		"never":  {mode: config.ColorNever, wantColor: false},
		"always": {mode: config.ColorAlways, wantColor: true},
		// Buffers are never terminals.
		"auto": {mode: config.ColorAuto, wantColor: false},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			var buf bytes.Buffer
			NewColorPrinter(tc.mode).Fprintln(&buf, ColorBoldRed, "No such file or directory.")

			assert.Contains(t, buf.String(), "No such file or directory.")
			assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
			assert.Equal(t, tc.wantColor, bytes.Contains(buf.Bytes(), []byte("\x1b[")))
		})
	}
}
