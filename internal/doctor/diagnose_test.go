// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/config"
)

func TestToErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "illegal argument",
			err:      errorx.IllegalArgument.New("missing flag"),
			expected: 10400,
		},
		{
			name:     "ambiguous resource",
			err:      cloud.AmbiguousError.New("2 projects named acme"),
			expected: 10409,
		},
		{
			name:     "remote failure",
			err:      cloud.RemoteError.New("control plane timeout"),
			expected: 10502,
		},
		{
			name:     "cloud not found carries the trait",
			err:      cloud.NotFoundError.New("project acme"),
			expected: 10404,
		},
		{
			name:     "config not found carries the trait",
			err:      config.NotFoundError.New("config.yaml"),
			expected: 10404,
		},
		{
			name:     "anything else",
			err:      errorx.IllegalState.New("boom"),
			expected: 10500,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, toErrorCode(tc.err))
		})
	}
}

func TestFindResolutionProperty(t *testing.T) {
	err := cloud.RemoteError.New("boom").
		WithProperty(ErrPropertyResolution, "Retry with --check-resources.")

	require.Equal(t, []string{"Retry with --check-resources."}, findResolution(err))
}

func TestFindResolutionByType(t *testing.T) {
	res := findResolution(cloud.AmbiguousError.New("2 projects named acme"))
	require.Len(t, res, 1)
	require.Contains(t, res[0], "resource ID")

	res = findResolution(cloud.RemoteError.New("timeout"))
	require.Len(t, res, 2)
	require.Contains(t, res[1], "Re-running")

	res = findResolution(config.NotFoundError.New("nope").
		WithProperty(errorx.PropertyPayload(), "/etc/stackadmin.yaml"))
	require.Len(t, res, 1)
	require.Contains(t, res[0], "/etc/stackadmin.yaml")
}

func TestDiagnoseCarriesTraceId(t *testing.T) {
	ctx := context.WithValue(context.Background(), "traceId", "trace-123")

	d := Diagnose(ctx, cloud.NotFoundError.New("project acme not found"))
	require.Equal(t, "trace-123", d.TraceId)
	require.Equal(t, 10404, d.Code)
	require.Equal(t, "project acme not found", d.Message)
	require.NotEmpty(t, d.ErrorType)
	require.NotEmpty(t, d.Resolution)
}

func TestGetInstructionsFromReport(t *testing.T) {
	require.Empty(t, GetInstructionsFromReport(nil))

	leaf := &automa.Report{Metadata: map[string]string{"instructions": "Check the backup directory."}}
	root := &automa.Report{StepReports: []*automa.Report{{}, leaf}}
	require.Equal(t, "Check the backup directory.", GetInstructionsFromReport(root))

	require.Empty(t, GetInstructionsFromReport(&automa.Report{}))
}
