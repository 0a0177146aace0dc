package args

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/crowdsecurity/go-cs-lib/cstest"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name        string
		validator   cobra.PositionalArgs
		args        []string
		expectedErr string
	}{
		{name: "minimum ok", validator: MinimumNArgs(1), args: []string{"a", "b"}},
		{name: "minimum short", validator: MinimumNArgs(2), args: []string{"a"}, expectedErr: "requires at least 2 arg(s), only received 1"},
		{name: "maximum ok", validator: MaximumNArgs(1), args: nil},
		{name: "maximum long", validator: MaximumNArgs(1), args: []string{"a", "b"}, expectedErr: "accepts at most 1 arg(s), received 2"},
		{name: "range ok", validator: RangeArgs(1, 2), args: []string{"a", "b"}},
		{name: "range short", validator: RangeArgs(1, 2), args: nil, expectedErr: "accepts between 1 and 2 arg(s), received 0"},
		{name: "exact", validator: ExactArgs(1), args: []string{"a"}},
		{name: "exact wrong", validator: ExactArgs(1), args: nil, expectedErr: "accepts 1 arg(s), received 0"},
		{name: "none", validator: NoArgs, args: nil},
		{name: "none given one", validator: NoArgs, args: []string{"lst"}, expectedErr: `unknown command "lst" for "users"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cmd := &cobra.Command{Use: "users", Run: func(*cobra.Command, []string) {}}
			cmd.SetOut(out)

			err := tc.validator(cmd, tc.args)
			cstest.RequireErrorContains(t, err, tc.expectedErr)

			if tc.expectedErr == "" {
				assert.Empty(t, out.String())
				return
			}

			assert.Contains(t, out.String(), "Usage:")
		})
	}
}
