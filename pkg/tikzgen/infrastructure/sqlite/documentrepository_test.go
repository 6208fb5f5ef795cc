package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
	"kgeyst.com/tikzgen/pkg/tikzgen/infrastructure/sqlite"
)

func setupRepository(t *testing.T) domain.DocumentRepository {
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "documents.db")), &gorm.Config{})
	require.NoError(t, err)
	repository, err := sqlite.NewDocumentRepository(db)
	require.NoError(t, err)
	return repository
}

func newDocument(caption, code string) *domain.TikzDocument {
	return domain.NewTikzDocument(caption, code, &domain.CompileResult{}, nil)
}

func TestStoreAndFind(t *testing.T) {
	repository := setupRepository(t)
	document := newDocument("a red circle", "\\draw (0,0) circle (1);")
	require.NoError(t, repository.Store(document))
	documents, err := repository.Find(domain.DocumentFilter{})
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, document.ID, documents[0].ID)
	assert.Equal(t, document.Caption, documents[0].Caption)
	assert.Equal(t, document.Code, documents[0].Code)
	assert.False(t, documents[0].HasContent())
}

func TestFindByCaption(t *testing.T) {
	repository := setupRepository(t)
	require.NoError(t, repository.Store(newDocument("a red circle", "a")))
	require.NoError(t, repository.Store(newDocument("a blue square", "b")))
	documents, err := repository.Find(domain.DocumentFilter{Caption: "circle"})
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "a red circle", documents[0].Caption)
}

func TestFindLatestCount(t *testing.T) {
	repository := setupRepository(t)
	require.NoError(t, repository.Store(newDocument("first", "a")))
	require.NoError(t, repository.Store(newDocument("second", "b")))
	require.NoError(t, repository.Store(newDocument("third", "c")))
	documents, err := repository.Find(domain.DocumentFilter{LatestCount: 2})
	require.NoError(t, err)
	assert.Len(t, documents, 2)
}

func TestStoreIsIdempotentPerID(t *testing.T) {
	repository := setupRepository(t)
	document := newDocument("a red circle", "a")
	require.NoError(t, repository.Store(document))
	require.NoError(t, repository.Store(document))
	documents, err := repository.Find(domain.DocumentFilter{})
	require.NoError(t, err)
	assert.Len(t, documents, 1)
}

func TestRemoveAll(t *testing.T) {
	repository := setupRepository(t)
	require.NoError(t, repository.Store(newDocument("a red circle", "a")))
	require.NoError(t, repository.RemoveAll())
	documents, err := repository.Find(domain.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, documents)
}
