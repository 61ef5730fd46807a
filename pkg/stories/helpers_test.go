package stories

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/storyshelf/storyshelf/pkg/i18n"
	"github.com/storyshelf/storyshelf/pkg/notifications"
	"github.com/storyshelf/storyshelf/pkg/storage"
	"github.com/storyshelf/storyshelf/pkg/testutils"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	textData = []byte("definitely not an image")
)

type testEnv struct {
	db         *bun.DB
	store      *storage.LocalStore
	svc        *Service
	translator *i18n.Translator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutils.NewDB(t)
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	tr, err := i18n.New()
	require.NoError(t, err)

	return &testEnv{
		db:         db,
		store:      store,
		svc:        NewService(db, store, notifications.NewDispatcher(tr, i18n.LocaleEnglish), 5),
		translator: tr,
	}
}

// failingStore stores the first n files and fails on the rest.
type failingStore struct {
	*storage.LocalStore
	remaining int
}

func (s *failingStore) Store(ctx context.Context, r io.Reader, size int64, key string) (string, error) {
	if s.remaining == 0 {
		return "", errors.New("disk full")
	}
	s.remaining--
	return s.LocalStore.Store(ctx, r, size, key)
}
