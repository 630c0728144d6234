package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"astrocards/internal/presentation"
	"astrocards/pkg/log"
	"astrocards/test/fixtures"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	endpointFlag, formatFlag, verboseFlag = "", "text", false

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.Execute()
	log.Default().Shutdown()
	return stdout.String(), stderr.String(), err
}

func provider(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var location string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		location = r.URL.Query().Get("location")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &location
}

func TestFetch_Text(t *testing.T) {
	// Arrange
	server, location := provider(t, http.StatusOK, fixtures.SeattleFullMoon())

	// Act
	out, _, err := runCLI(t, "fetch", "--endpoint", server.URL, "Seattle", "WA")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Seattle WA", *location)
	require.Contains(t, out, "Seattle, Washington, United States of America\nDate: 2026-10-16\n")
	for _, line := range []string{"Sunrise", "07:28 AM", "Moonset", "08:02 AM", "Full Moon", "87%"} {
		require.Contains(t, out, line)
	}
}

func TestFetch_JSON(t *testing.T) {
	server, _ := provider(t, http.StatusOK, fixtures.SeattleFullMoon())

	out, _, err := runCLI(t, "fetch", "-e", server.URL, "-f", "json", "Seattle")

	require.NoError(t, err)
	var views presentation.Views
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Equal(t, "Date: 2026-10-16", views.DateLine)
	require.Len(t, views.Events, 4)
	require.Equal(t, "87%", views.Illumination.BarWidth)
}

func TestFetch_Failures_ShowStatusMessage(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "malformed body", status: http.StatusOK, body: fixtures.AstroMissingIllumination()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server, _ := provider(t, tc.status, tc.body)

			out, _, err := runCLI(t, "fetch", "--endpoint", server.URL, "Seattle")

			require.EqualError(t, err, presentation.StatusFetchFailed)
			require.Empty(t, out)
		})
	}
}

func TestFetch_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "fetch", "--endpoint", "http://127.0.0.1:1", "--format", "yaml", "Seattle")

	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "unknown format"))
}

func TestFetch_RequiresLocation(t *testing.T) {
	_, _, err := runCLI(t, "fetch", "--endpoint", "http://127.0.0.1:1")

	require.Error(t, err)
}

func TestFetch_VerboseLogsToStderr(t *testing.T) {
	server, _ := provider(t, http.StatusInternalServerError, "boom")

	_, stderr, _ := runCLI(t, "fetch", "-v", "--endpoint", server.URL, "Seattle")

	require.Contains(t, stderr, "astro fetch failed")
}
