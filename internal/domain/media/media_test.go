package media

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid upload", func(t *testing.T) {
		m, err := New(tenantID, "C:\\Users\\me\\Summer Photo.JPG", "image/jpeg", 2048, nil)
		require.NoError(t, err)
		assert.Equal(t, "Summer Photo.JPG", m.Filename)
		assert.Equal(t, StatusPending, m.Status)
		assert.True(t, m.IsImage())
		assert.Equal(t,
			"tenants/"+tenantID.String()+"/media/"+m.ID.String()+"/Summer_Photo.JPG",
			m.StorageKey)
	})

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
	}{
		{"empty name", "  ", "image/png", 10},
		{"zero size", "a.png", "image/png", 0},
		{"too large", "a.png", "image/png", MaxFileSize + 1},
		{"executable", "a.exe", "application/x-msdownload", 10},
		{"long name", strings.Repeat("a", 256), "image/png", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tenantID, tt.filename, tt.contentType, tt.size, nil)
			assert.Error(t, err)
		})
	}
}

func TestIsAllowedContentType(t *testing.T) {
	assert.True(t, IsAllowedContentType("image/png"))
	assert.True(t, IsAllowedContentType("text/plain; charset=utf-8"))
	assert.True(t, IsAllowedContentType("IMAGE/WEBP"))
	assert.False(t, IsAllowedContentType("text/html"))
}

func TestMedia_Lifecycle(t *testing.T) {
	m, err := New(uuid.New(), "doc.pdf", "application/pdf", 100, nil)
	require.NoError(t, err)
	assert.False(t, m.IsImage())

	require.NoError(t, m.Confirm())
	assert.Error(t, m.Confirm())

	require.NoError(t, m.Describe(" Annual report ", ""))
	assert.Equal(t, "Annual report", m.AltText)

	require.NoError(t, m.Delete())
	assert.Error(t, m.Delete())
	assert.Error(t, m.Confirm())
	assert.Error(t, m.Describe("x", ""))
}
