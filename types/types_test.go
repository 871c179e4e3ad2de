package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoaderState(t *testing.T) {
	testCases := []struct {
		state      LoaderState
		name       string
		canInstall bool
	}{
		{LoaderUnknown, "Unknown", false},
		{LoaderMissing, "Not installed", true},
		{LoaderInstalling, "Installing", false},
		{LoaderInstalled, "Installed", false},
		{LoaderFailed, "Failed", true},
		{LoaderState(99), "Unknown", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.state.String())
			assert.Equal(t, tc.canInstall, tc.state.CanInstall())
		})
	}
}
