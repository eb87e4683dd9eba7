package videolink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-platform/internal/models"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "обычная ссылка youtube",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name: "youtube без www",
			raw:  "https://youtube.com/watch?v=abc123",
		},
		{
			name:    "сторонний видеохостинг",
			raw:     "https://vimeo.com/12345",
			wantErr: true,
		},
		{
			name:    "поддомен-подделка",
			raw:     "https://youtube.com.evil.example/watch",
			wantErr: true,
		},
		{
			name:    "относительная ссылка без хоста",
			raw:     "/watch?v=abc123",
			wantErr: true,
		},
		{
			name:    "пустая строка",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
