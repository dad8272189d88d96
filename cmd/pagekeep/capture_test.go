package main_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/capture"
	main "github.com/fwojciec/pagekeep/cmd/pagekeep"
	"github.com/fwojciec/pagekeep/fs"
	"github.com/fwojciec/pagekeep/goquery"
	"github.com/fwojciec/pagekeep/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<html><head><title>Post</title></head><body><nav>Menu</nav><article><p>Hello</p><p>World</p></article></body></html>`

func staticOpener(html string) *mock.PageOpener {
	return &mock.PageOpener{
		OpenFn: func(_ context.Context, url string) (pagekeep.Page, func(), error) {
			return &pagekeep.StaticPage{Snap: &pagekeep.Snapshot{URL: url, HTML: html}}, func() {}, nil
		},
	}
}

func captureDeps(stdout, stderr *bytes.Buffer, store *contentStore, domains ...string) *main.Dependencies {
	deps := newDeps(stdout, stderr)
	settings := pagekeep.DefaultSettings()
	settings.WhitelistedDomains = domains
	deps.Settings = settingsStore(settings)
	deps.Content = store.service()
	deps.Opener = staticOpener(pageHTML)
	deps.Dispatcher = &capture.Dispatcher{
		Settings:  deps.Settings,
		Extractor: goquery.NewExtractor(),
		Content:   deps.Content,
	}
	return deps
}

func TestCaptureCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("submits whitelisted page", func(t *testing.T) {
		t.Parallel()

		store := newContentStore(0)
		stdout := &bytes.Buffer{}
		deps := captureDeps(stdout, &bytes.Buffer{}, store, "example.com")

		err := (&main.CaptureCmd{URL: "https://www.example.com/post"}).Run(deps)

		require.NoError(t, err)
		require.Len(t, store.stored, 1)
		assert.Equal(t, "Post", store.stored[0].Title)
		assert.Equal(t, "Hello\n\nWorld", store.stored[0].Content)
		assert.Contains(t, stdout.String(), "captured  Post  https://www.example.com/post")
	})

	t.Run("refuses host outside whitelist", func(t *testing.T) {
		t.Parallel()

		store := newContentStore(0)
		stderr := &bytes.Buffer{}
		deps := captureDeps(&bytes.Buffer{}, stderr, store, "example.com")

		err := (&main.CaptureCmd{URL: "https://example.org/"}).Run(deps)

		assert.Equal(t, pagekeep.EINVALID, pagekeep.ErrorCode(err))
		assert.Contains(t, stderr.String(), "pagekeep whitelist add example.org")
		assert.Empty(t, store.stored)
	})

	t.Run("dry run prints content", func(t *testing.T) {
		t.Parallel()

		store := newContentStore(0)
		stdout := &bytes.Buffer{}
		deps := captureDeps(stdout, &bytes.Buffer{}, store, "example.com")
		deps.Dispatcher.DryRun = true

		err := (&main.CaptureCmd{URL: "https://example.com/", DryRun: true}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, store.stored)
		assert.Contains(t, stdout.String(), "Title: Post")
		assert.Contains(t, stdout.String(), "Hello\n\nWorld")
	})

	t.Run("reports submission failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := captureDeps(&bytes.Buffer{}, stderr, newContentStore(0), "example.com")
		deps.Dispatcher.Content = &mock.ContentService{
			StoreContentFn: func(context.Context, *pagekeep.CapturedDocument) (*pagekeep.Ack, error) {
				return nil, pagekeep.Errorf(pagekeep.EUNAVAILABLE, "content server unreachable")
			},
		}

		err := (&main.CaptureCmd{URL: "https://example.com/"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: content server unreachable")
	})

	t.Run("reports open failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := captureDeps(&bytes.Buffer{}, stderr, newContentStore(0), "example.com")
		deps.Opener = &mock.PageOpener{
			OpenFn: func(context.Context, string) (pagekeep.Page, func(), error) {
				return nil, nil, errors.New("dial tcp: connection refused")
			},
		}

		err := (&main.CaptureCmd{URL: "https://example.com/"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: dial tcp: connection refused")
	})
}

func TestCaptureCmd_RunWritesToDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stdout := &bytes.Buffer{}
	deps := captureDeps(stdout, &bytes.Buffer{}, newContentStore(0), "example.com")
	deps.Dispatcher.Content = fs.NewWriter(dir)

	err := (&main.CaptureCmd{URL: "https://example.com/post", Out: dir}).Run(deps)

	require.NoError(t, err)
	want := filepath.Join(dir, "example.com", "post.txt")
	assert.FileExists(t, want)
	assert.Contains(t, stdout.String(), want)
}
