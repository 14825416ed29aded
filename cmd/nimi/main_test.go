package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/export"
)

func testGeneration(t *testing.T) conlang.Generation {
	t.Helper()

	c := config.Default()
	c.Seed = 12

	g, err := conlang.Generate(c, 2, nil)
	require.NoError(t, err)

	return g
}

func TestWriteGeneration(t *testing.T) {
	g := testGeneration(t)

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeGeneration(&buf, g, formatTable))

		out := buf.String()
		assert.Contains(t, out, g.Dictionary[0].Roman)
		assert.Contains(t, out, "seed 12")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeGeneration(&buf, g, formatCSV))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Len(t, lines, len(g.Dictionary)+1)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeGeneration(&buf, g, formatJSON))

		var got conlang.Generation
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, g.ID, got.ID)
	})
}

func TestLoadDictionary(t *testing.T) {
	g := testGeneration(t)
	dir := t.TempDir()

	full := filepath.Join(dir, "generation.json")
	require.NoError(t, export.SaveFile(full, func(w io.Writer) error {
		return export.WriteJSON(w, g)
	}))

	bare := filepath.Join(dir, "dictionary.json")
	require.NoError(t, export.SaveFile(bare, func(w io.Writer) error {
		return export.WriteJSON(w, g.Dictionary)
	}))

	for _, p := range []string{full, bare} {
		dict, err := loadDictionary(p)
		require.NoError(t, err)
		assert.Equal(t, g.Dictionary, dict)
	}

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("nope"), 0o644))

	_, err := loadDictionary(broken)
	assert.Error(t, err)

	for name, body := range map[string]string{
		"empty.json":  `{}`,
		"config.json": `{"name":"tenpo","root_count":20}`,
	} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

		_, err := loadDictionary(p)
		assert.Error(t, err, name)
	}
}

func TestExecute_ClosesLogFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nimi.log")

	rootCmd.SetArgs([]string{"--log-file", path, "generate", "--format", "xml"})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagLogFile = DefaultLogFilePath
		flagFormat = string(DefaultFormat)
	})

	require.Error(t, Execute())
	assert.Nil(t, logFile)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "unknown format")
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("NIMI_ROOT_COUNT", "9")

	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.RootCount)
}

func TestOutputFormat(t *testing.T) {
	assert.True(t, formatCSV.valid())
	assert.False(t, outputFormat("xml").valid())
}
