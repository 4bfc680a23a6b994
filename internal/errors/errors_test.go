package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetail_PreservesCode(t *testing.T) {
	err := ErrRoomFull.WithDetail("room %s has %d/%d beds occupied", "101", 2, 2)

	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Equal(t, "ROOM_FULL", err.Code)
	assert.Equal(t, "room has no free beds: room 101 has 2/2 beds occupied", err.Error())
}

func TestIs_MatchesByCodeNotIdentity(t *testing.T) {
	detailed := ErrNotFound.WithDetail("property")
	wrapped := fmt.Errorf("loading portfolio: %w", detailed)

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrValidation)
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []*DomainError{
		ErrNotFound, ErrValidation, ErrRoomFull,
		ErrAlreadyAssigned, ErrNotAssigned, ErrInvalidTransition, ErrAuth,
	}
	seen := make(map[string]bool)
	for _, s := range sentinels {
		assert.False(t, seen[s.Code], "duplicate code %s", s.Code)
		seen[s.Code] = true
	}
}

func TestDomainError_As(t *testing.T) {
	var domainErr *DomainError
	err := fmt.Errorf("outer: %w", ErrAuth.WithDetail("token revoked"))

	assert.True(t, stderrors.As(err, &domainErr))
	assert.Equal(t, "AUTH_ERROR", domainErr.Code)
}
