package publish

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"loadorder-manager/core/reconcile"
	"loadorder-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStorageSink_Publish(t *testing.T) {
	client := new(mocks.Client)
	sink := NewStorageSink(client, "loadorders", "profiles")

	order := []reconcile.Entry{{ID: "Skyrim.esm", Enabled: true, Rank: 0}}
	expected := RenderPluginsTxt(order)

	client.On("PutObject", mock.Anything, "loadorders", "profiles/skyrimse/plugins.txt",
		mock.Anything, int64(len(expected)), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	assert.NoError(t, sink.Publish(context.Background(), "skyrimse", order))
	client.AssertExpectations(t)

	body := client.Calls[0].Arguments.Get(3).(io.Reader)
	data, err := io.ReadAll(body)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestStorageSink_PublishError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	err := NewStorageSink(client, "loadorders", "").Publish(context.Background(), "skyrimse", nil)
	assert.ErrorContains(t, err, "skyrimse/plugins.txt")
	assert.ErrorContains(t, err, "access denied")
}

func TestStorageSink_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Published", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "loadorders", "skyrimse/plugins.txt", mock.Anything).
			Return(io.NopCloser(strings.NewReader("*Skyrim.esm\nOld.esp\n")), nil)

		order, err := NewStorageSink(client, "loadorders", "").Restore(ctx, "skyrimse")
		assert.NoError(t, err)
		assert.Equal(t, []reconcile.Entry{
			{ID: "Skyrim.esm", Enabled: true, Rank: 0},
			{ID: "Old.esp", Enabled: false, Rank: 1},
		}, order)
	})

	t.Run("Never Published", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "loadorders", "skyrimse/plugins.txt", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		order, err := NewStorageSink(client, "loadorders", "").Restore(ctx, "skyrimse")
		assert.NoError(t, err)
		assert.Empty(t, order)
	})

	t.Run("Other Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "loadorders", "skyrimse/plugins.txt", mock.Anything).
			Return(nil, errors.New("timeout"))

		_, err := NewStorageSink(client, "loadorders", "").Restore(ctx, "skyrimse")
		assert.ErrorContains(t, err, "timeout")
	})
}
