package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "fairscan", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotNil(t, rootCmd.PersistentPreRunE)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"analyze", "batch", "boundaries"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestAnalyzeCommandFlags(t *testing.T) {
	for _, name := range []string{"input", "format", "boundaries", "output", "pretty"} {
		require.NotNil(t, analyzeCmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestBatchCommandRequiresArgs(t *testing.T) {
	require.NotNil(t, batchCmd.Args)
	assert.Error(t, batchCmd.Args(batchCmd, nil))
	assert.NoError(t, batchCmd.Args(batchCmd, []string{"points.csv"}))
}
