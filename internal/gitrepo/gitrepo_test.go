package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoName(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/owner/repo.git", "repo"},
		{"https://github.com/owner/repo", "repo"},
		{"https://github.com/owner/repo/", "repo"},
		{"git@github.com:owner/tool.git", "tool"},
		{"  https://github.com/owner/spaced.git  ", "spaced"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RepoName(tc.url), "url %s", tc.url)
	}
}

func TestCloneEmptyURL(t *testing.T) {
	_, _, _, err := Clone(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestReadReadme(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, ok := ReadReadme(t.TempDir())
		assert.False(t, ok)
	})

	t.Run("standard name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hello"), 0o644))

		content, ok := ReadReadme(dir)
		require.True(t, ok)
		assert.Equal(t, "# hello", content)
	})

	t.Run("variant precedence", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("txt"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("md"), 0o644))

		content, ok := ReadReadme(dir)
		require.True(t, ok)
		assert.Equal(t, "md", content, "README.md wins over README.txt")
	})
}
