package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/rosterhq/roster/pkg/errors"
)

func TestIsUniqueConstraintError(t *testing.T) {
	require.False(t, isUniqueConstraintError(nil))
	require.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	require.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: invitations.dedup_key")))
	require.False(t, isUniqueConstraintError(errors.New("connection reset")))
}

func TestStoreErrorMapsTransientToUnavailable(t *testing.T) {
	err := storeError(context.DeadlineExceeded, "load team")
	require.ErrorIs(t, err, apperrors.ErrUnavailable)

	err = storeError(driver.ErrBadConn, "load team")
	require.ErrorIs(t, err, apperrors.ErrUnavailable)

	err = storeError(errors.New("syntax error"), "load team")
	require.NotErrorIs(t, err, apperrors.ErrUnavailable)
	require.Error(t, err)

	require.NoError(t, storeError(nil, "load team"))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@x.com", normalizeEmail("  A@X.COM "))
}
