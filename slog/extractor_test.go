package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/mock"
	pkslog "github.com/fwojciec/pagekeep/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Extractor{
			ExtractFn: func(snap *pagekeep.Snapshot) (*pagekeep.CapturedDocument, error) {
				return &pagekeep.CapturedDocument{URL: snap.URL, Content: "abc"}, nil
			},
		}

		ext := pkslog.NewLoggingExtractor(inner, logger)
		doc, err := ext.Extract(&pagekeep.Snapshot{URL: "https://example.com/", HTML: "<p>abc</p>"})

		require.NoError(t, err)
		assert.Equal(t, "abc", doc.Content)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "html_bytes=10")
		assert.Contains(t, output, "content_bytes=3")
	})

	t.Run("silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(snap *pagekeep.Snapshot) (*pagekeep.CapturedDocument, error) {
				return &pagekeep.CapturedDocument{URL: snap.URL}, nil
			},
		}

		ext := pkslog.NewLoggingExtractor(inner, logger)
		_, err := ext.Extract(&pagekeep.Snapshot{URL: "https://example.com/"})

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}
