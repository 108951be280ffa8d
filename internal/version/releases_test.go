// SPDX-License-Identifier: Apache-2.0

package version

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedValues(t *testing.T) {
	require.NotEmpty(t, strings.TrimSpace(Number()))
	require.NotEmpty(t, strings.TrimSpace(Commit()))
}

func TestInfoFormat(t *testing.T) {
	info := Get()
	require.Equal(t, Number(), info.Number)
	require.Equal(t, Commit(), info.Commit)
	require.NotEmpty(t, info.GoVersion)

	out, err := info.Format(FormatJSON)
	require.NoError(t, err)
	var fromJSON Info
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	require.Equal(t, info, fromJSON)

	out, err = info.Format(FormatYAML)
	require.NoError(t, err)
	var fromYAML Info
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	require.Equal(t, info, fromYAML)

	// Format is case insensitive; anything else is rejected.
	_, err = info.Format("YAML")
	require.NoError(t, err)
	_, err = info.Format("toml")
	require.Error(t, err)
}
