package localfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveAndReadBack(t *testing.T) {
	store := newTestStore(t)
	owner := uuid.New()

	relPath, err := store.Save(owner, "certificates", Upload{
		Filename: "scan.pdf",
		Content:  strings.NewReader("pdf bytes"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, owner.String()+"/certificates/"))
	assert.True(t, strings.HasSuffix(relPath, "_scan.pdf"))

	fullPath, err := store.FullPath(relPath)
	require.NoError(t, err)

	data, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))

	assert.True(t, store.Exists(relPath))
}

func TestSaveStripsDirectoryFromFilename(t *testing.T) {
	store := newTestStore(t)

	relPath, err := store.Save(uuid.New(), "referrals", Upload{
		Filename: "../../evil.sh",
		Content:  strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, "_evil.sh"))
	assert.NotContains(t, relPath, "..")
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	store := newTestStore(t)
	owner := uuid.New()

	first, err := store.Save(owner, "appointments", Upload{
		Filename: "report.pdf", Content: strings.NewReader("a"),
	})
	require.NoError(t, err)

	second, err := store.Save(owner, "appointments", Upload{
		Filename: "report.pdf", Content: strings.NewReader("b"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	relPath, err := store.Save(uuid.New(), "vaccinations", Upload{
		Filename: "card.jpg", Content: strings.NewReader("jpg"),
	})
	require.NoError(t, err)

	require.NoError(t, store.Delete(relPath))
	assert.False(t, store.Exists(relPath))

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(relPath))
}

func TestDeleteOwner(t *testing.T) {
	store := newTestStore(t)
	owner := uuid.New()
	other := uuid.New()

	mine, err := store.Save(owner, "certificates", Upload{
		Filename: "a.pdf", Content: strings.NewReader("a"),
	})
	require.NoError(t, err)
	theirs, err := store.Save(other, "certificates", Upload{
		Filename: "b.pdf", Content: strings.NewReader("b"),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteOwner(owner))
	assert.False(t, store.Exists(mine))
	assert.True(t, store.Exists(theirs))

	// An owner with nothing stored is a no-op.
	assert.NoError(t, store.DeleteOwner(uuid.New()))
}

func TestDeleteEmptyPath(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Delete(""))
}

func TestFullPathRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, p := range []string{
		"../secrets",
		"a/../../secrets",
		"/etc/passwd",
	} {
		_, err := store.FullPath(p)
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q", p)
	}
}

func TestFullPathStaysUnderBase(t *testing.T) {
	store := newTestStore(t)
	owner := uuid.New()

	relPath, err := store.Save(owner, "prescriptions", Upload{
		Filename: "rx.pdf", Content: strings.NewReader("rx"),
	})
	require.NoError(t, err)

	fullPath, err := store.FullPath(relPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fullPath, store.basePath+string(filepath.Separator)))
}
