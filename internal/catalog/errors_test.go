package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrDuplicate))
	assert.False(t, errors.Is(ErrNotFound, ErrConstraint))
	assert.False(t, errors.Is(ErrDuplicate, ErrConstraint))
}

func TestMapSQLiteError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound},
		{"unique", errors.New("constraint failed: UNIQUE constraint failed: series.name_key (2067)"), ErrDuplicate},
		{"foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ErrConstraint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapSQLiteError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := errors.New("disk I/O error")
	assert.Equal(t, other, mapSQLiteError(other))
}
