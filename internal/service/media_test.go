// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroReader yields an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func newTestMedia(t *testing.T) (*MediaService, string) {
	t.Helper()
	env := newTestEnv(t)
	dir := t.TempDir()
	media, err := NewMediaService(dir, env.audit)
	require.NoError(t, err)
	return media, dir
}

func TestMediaSave_StoresFile(t *testing.T) {
	media, dir := newTestMedia(t)

	stored, err := media.Save(context.Background(), "agenda.pdf", "application/pdf",
		strings.NewReader("%PDF-1.4 stub"))
	require.NoError(t, err)
	require.Equal(t, "agenda.pdf", stored.OriginalName)
	require.True(t, strings.HasSuffix(stored.FileName, ".pdf"))
	require.EqualValues(t, len("%PDF-1.4 stub"), stored.Size)

	data, err := os.ReadFile(filepath.Join(dir, stored.FileName))
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 stub", string(data))
}

func TestMediaSave_RejectsUnsupportedType(t *testing.T) {
	media, _ := newTestMedia(t)

	_, err := media.Save(context.Background(), "notes.txt", "text/plain",
		strings.NewReader("hello"))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestMediaSave_RejectsOversizedFile(t *testing.T) {
	media, _ := newTestMedia(t)

	_, err := media.Save(context.Background(), "huge.pdf", "application/pdf",
		io.LimitReader(zeroReader{}, MaxUploadBytes+1))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestMediaRemove_RejectsPathEscapes(t *testing.T) {
	media, _ := newTestMedia(t)

	require.Error(t, media.Remove("../secrets"))
	require.Error(t, media.Remove("a/b"))
}
