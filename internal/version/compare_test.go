package version

import (
	"testing"

	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStrategyVersion(t *testing.T) {
	tests := []struct {
		name             string
		supportedVersion string
		documentVersion  string
		expectCode       errors.ErrorCode
		errorContains    string
	}{
		{
			name:             "exact match",
			supportedVersion: "1.2.0",
			documentVersion:  "1.2.0",
		},
		{
			name:             "document patch higher",
			supportedVersion: "1.2.0",
			documentVersion:  "1.2.5",
		},
		{
			name:             "document minor older",
			supportedVersion: "1.2.0",
			documentVersion:  "1.0.0",
		},
		{
			name:             "v prefix",
			supportedVersion: "v1.2.0",
			documentVersion:  "v1.2.3",
		},
		{
			name:             "empty document version",
			supportedVersion: "1.0.0",
			documentVersion:  "",
		},
		{
			name:             "development build",
			supportedVersion: "main",
			documentVersion:  "9.9.9",
		},
		{
			name:             "document minor newer",
			supportedVersion: "1.2.0",
			documentVersion:  "1.3.0",
			expectCode:       errors.ErrCodeVersionMismatch,
			errorContains:    "minor version mismatch",
		},
		{
			name:             "major differs",
			supportedVersion: "1.2.0",
			documentVersion:  "2.0.0",
			expectCode:       errors.ErrCodeVersionMismatch,
			errorContains:    "major version mismatch",
		},
		{
			name:             "invalid document version",
			supportedVersion: "1.0.0",
			documentVersion:  "one",
			expectCode:       errors.ErrCodeInvalidVersion,
			errorContains:    "invalid strategy version",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckStrategyVersion(tc.supportedVersion, tc.documentVersion)
			if tc.expectCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tc.expectCode))
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestGetVersion(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "1.4.2"
	assert.Equal(t, "1.4.2", GetVersion())
}
