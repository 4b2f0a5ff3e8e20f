package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	pv "github.com/n0h4rt/pvclient"
	"github.com/n0h4rt/pvclient/models"
	"github.com/n0h4rt/pvclient/pvtest"
)

const testPassword = "correct-horse-battery"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheck(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetElements(models.ElementsDB{Taken: map[string]string{"pv-a1": "Ana"}, Reserved: []string{"pv-b2"}})

	out, err := run(t, "--base-url", srv.URL, "-o", "json", "check", "pv-a1", "pv-a2", "pv-b2", "nope")
	require.NoError(t, err)

	var rows []elementRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)

	assert.Equal(t, "taken", rows[0].State)
	assert.Equal(t, "Ana", rows[0].Name)
	assert.Len(t, rows[0].Suggestions, pv.SUGGEST_DEFAULT)
	assert.NotContains(t, rows[0].Suggestions, "pv-a1")

	assert.Equal(t, "available", rows[1].State)
	assert.Empty(t, rows[1].Suggestions)

	assert.Equal(t, "reserved", rows[2].State)
	assert.NotContains(t, rows[2].Suggestions, "pv-b2")

	assert.Equal(t, "invalid", rows[3].State)
}

func TestElements_Text(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetElements(models.ElementsDB{Taken: map[string]string{"pv-a1": "Ana"}, Reserved: []string{"pv-b2"}})

	out, err := run(t, "--base-url", srv.URL, "elements")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"MID", "STATE", "NAME"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"pv-a1", "taken", "Ana"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"pv-b2", "reserved"}, strings.Fields(lines[2]))
}

func TestReserveAndRelease(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()

	out, err := run(t, "--base-url", srv.URL, "-o", "json", "reserve", "wr-2", "Wu")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"mid":"wr-2","state":"taken","name":"Wu"}]`, out)
	assert.Equal(t, "Wu", srv.Elements().Taken["wr-2"])

	// Releasing needs a logged-in session
	_, err = run(t, "--base-url", srv.URL, "release", "wr-2")
	var statusErr *pv.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, pv.StatusUnauthorized, statusErr.Status)

	session := srv.Login(srv.AddUser("Wu", testPassword))
	out, err = run(t, "--base-url", srv.URL, "--session", session, "-o", "json", "release", "wr-2")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"mid":"wr-2","state":"available"}]`, out)

	_, err = run(t, "--base-url", srv.URL, "reserve", "pv-a17", "Ana")
	assert.ErrorIs(t, err, models.ErrInvalidMID)
}

func TestConfigFile(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetModules(models.ReservedModules{"mod-2": "Bo", "mod-1": "Ana"})

	path := filepath.Join(t.TempDir(), "pvctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: "+srv.URL+"\noutput: json\n"), 0600))

	out, err := run(t, "--config", path, "modules")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"module":"mod-1","name":"Ana"},{"module":"mod-2","name":"Bo"}]`, out)

	// Flags win over the config file
	out, err = run(t, "--config", path, "-o", "yaml", "config")
	require.NoError(t, err)

	var config effectiveConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &config))
	assert.Equal(t, path, config.File)
	assert.Equal(t, srv.URL, config.BaseURL)
	assert.Equal(t, outputYAML, config.Output)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "modules")
	assert.Error(t, err)
}

func TestSingleModule(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetModules(models.ReservedModules{"mod-1": "Ana", "mod-2": "Bo"})

	out, err := run(t, "--base-url", srv.URL, "-o", "json", "modules", "mod-2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"module":"mod-2","name":"Bo"}`, out)

	_, err = run(t, "--base-url", srv.URL, "modules", "mod-9")
	assert.ErrorContains(t, err, `module "mod-9" is not reserved`)
}

func TestEnvironment(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	uid := srv.AddUser("admin", testPassword)

	t.Setenv("PVCTL_BASE_URL", srv.URL)

	out, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "anonymous", strings.TrimSpace(out))

	t.Setenv("PVCTL_SESSION", srv.Login(uid))

	out, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "1", "admin"}, strings.Fields(out))
}

func TestUsers(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	admin := srv.Login(srv.AddUser("admin", testPassword))
	base := []string{"--base-url", srv.URL, "--session", admin, "-o", "json", "users"}

	out, err := run(t, append(base, "add", "Ana", "--password", testPassword)...)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"uid":1,"name":"admin"},{"uid":2,"name":"Ana"}]`, out)

	_, err = run(t, append(base, "passwd", "2", "--password", "a-brand-new-password")...)
	require.NoError(t, err)
	assert.True(t, srv.CheckPassword(2, "a-brand-new-password"))

	_, err = run(t, append(base, "add", "Bo", "--password", "short")...)
	assert.ErrorIs(t, err, pv.ErrInvalidPassword)

	_, err = run(t, append(base, "delete", "two")...)
	assert.Error(t, err)

	out, err = run(t, append(base, "delete", "2")...)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"uid":1,"name":"admin"}]`, out)

	// Anonymous sessions are turned away
	_, err = run(t, "--base-url", srv.URL, "users", "list")
	assert.ErrorIs(t, err, pv.ErrRequestFailed)
}

func TestStatus(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()
	srv.SetModules(models.ReservedModules{"mod-1": "Ana"})
	srv.SetElements(models.ElementsDB{Taken: map[string]string{"pv-a1": "Ana"}, Reserved: []string{"pv-b2", "pv-b3"}})

	out, err := run(t, "--base-url", srv.URL, "-o", "json", "status")
	require.NoError(t, err)

	var report statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, statusReport{BaseURL: srv.URL, User: "anonymous", Modules: 1, Taken: 1, Reserved: 2}, report)

	srv.ForceStatus("GET", "elements", 500)
	out, err = run(t, "--base-url", srv.URL, "-o", "json", "status")
	assert.ErrorIs(t, err, pv.ErrRequestFailed)

	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 0, report.Taken)
	assert.Len(t, report.Errors, 1)
}

func TestMissingBaseURL(t *testing.T) {
	t.Setenv("PVCTL_BASE_URL", "")

	_, err := run(t, "--config", writeEmptyConfig(t), "modules")
	assert.ErrorContains(t, err, "no base url")
}

func TestUnknownOutput(t *testing.T) {
	srv := pvtest.NewServer()
	defer srv.Close()

	_, err := run(t, "--base-url", srv.URL, "-o", "xml", "modules")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pvctl "))
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pvctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: text\n"), 0600))
	return path
}
