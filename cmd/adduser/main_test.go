package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "success.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	args := []string{"-user", "testuser", "-password", "secret123", "-salary", "5000", "-email", "t@example.com", "-db", dbPath}
	require.NoError(t, run(args, new(bytes.Buffer), stdout, stderr))
	assert.Contains(t, stdout.String(), "User testuser created successfully")
}

func TestRun_DuplicateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duplicate.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	args := []string{"-user", "testuser", "-password", "secret123", "-db", dbPath}

	require.NoError(t, run(args, new(bytes.Buffer), stdout, stderr), "first run should succeed")

	err := run(args, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err, "expected error on duplicate user")
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingUserFlag(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-password", "secret123"}, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: user")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "interactive.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	stdin := bytes.NewBufferString("interactive_secret\n")

	require.NoError(t, run([]string{"-user", "interactive_user", "-db", dbPath}, stdin, stdout, stderr))
	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User interactive_user created successfully")
}

func TestRun_EmptyPassword(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-user", "empty_pass_user"}, bytes.NewBufferString("\n"), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_ShortPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "short.db")
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-user", "shorty", "-password", "abc", "-db", dbPath}, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestRun_EnvVarOverride(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("SQLITE_PATH", dbPath)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	require.NoError(t, run([]string{"-user", "envuser", "-password", "secret123"}, new(bytes.Buffer), stdout, stderr))
	assert.FileExists(t, dbPath)
}

func TestRun_InvalidDBPath(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-user", "failuser", "-password", "secret123", "-db", t.TempDir()}, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_InvalidFlag(t *testing.T) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)

	err := run([]string{"-invalid"}, new(bytes.Buffer), stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
