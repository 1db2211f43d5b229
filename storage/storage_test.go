package storage

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytheme/codec"
	"skytheme/palette"
	"skytheme/style"
)

func TestBuildWritesArtifacts(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.EnsureDirs())
	require.NoError(t, Build(s, palette.All(), nil))

	artifacts, err := s.List()
	require.NoError(t, err)
	names := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		names = append(names, a.Name)
		assert.Greater(t, a.Size, int64(0), a.Name)
	}
	assert.Equal(t, []string{StylesheetFile, TailwindFile, ThemesFile}, names)

	css, err := s.Read(StylesheetFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(css), ".rainy-gradient {"))

	table, err := s.Read(ThemesFile)
	require.NoError(t, err)
	themes, err := codec.Unmarshal(codec.FormatYAML, table)
	require.NoError(t, err)
	assert.Equal(t, palette.All(), themes)

	raw, err := s.Read(TailwindFile)
	require.NoError(t, err)
	var doc style.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, style.DefaultContent, doc.Content)
	assert.Len(t, doc.Theme.Extend.Colors, 7)
}

func TestSaveArtifactReplaces(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.SaveArtifact("a.css", []byte("one")))
	require.NoError(t, s.SaveArtifact("a.css", []byte("two")))

	got, err := s.Read("a.css")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	artifacts, err := s.List()
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
}

func TestListEmpty(t *testing.T) {
	artifacts, err := New(t.TempDir()).List()
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestRejectsInvalidNames(t *testing.T) {
	s := New(t.TempDir())
	for _, name := range []string{"", "../x.css", "sub/x.css", ".hidden"} {
		err := s.SaveArtifact(name, []byte("x"))
		assert.True(t, errors.Is(err, ErrInvalidName), name)
		_, err = s.Read(name)
		assert.True(t, errors.Is(err, ErrInvalidName), name)
	}
}
