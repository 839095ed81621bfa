//go:build linux

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceUnit(t *testing.T) {
	unit := serviceUnit("/usr/local/bin/netpad", []string{"--touch.device=/dev/input/event0", "--layout=/etc/netpad/my layout.yaml"}, false)

	assert.Contains(t, unit, "ExecStartPre=-/usr/local/bin/netpad descriptor --configfs --bind\n")
	assert.Contains(t, unit, `ExecStart=/usr/local/bin/netpad serve --touch.device=/dev/input/event0 "--layout=/etc/netpad/my layout.yaml"`+"\n")
	assert.Contains(t, unit, "WantedBy=multi-user.target\n")

	user := serviceUnit("/opt/netpad", nil, true)
	assert.Contains(t, user, "ExecStart=/opt/netpad serve\n")
	assert.Contains(t, user, "WantedBy=default.target\n")
}

func TestQuoteArg(t *testing.T) {
	tests := []struct{ in, want string }{
		{in: "plain", want: "plain"},
		{in: "", want: `""`},
		{in: "a b", want: `"a b"`},
		{in: `say "hi"`, want: `"say \"hi\""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteArg(tt.in))
	}
}
