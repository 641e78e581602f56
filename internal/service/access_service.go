package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/getaroom/rental-service/internal/auth"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// LockState is the stored keyless-entry state for a room.
type LockState string

const (
	LockStateLocked   LockState = "locked"
	LockStateUnlocked LockState = "unlocked"
)

// AccessService manages keyless-entry lock state in Redis. A room with no
// stored state is treated as locked.
type AccessService struct {
	redis *redis.Client
}

// NewAccessService constructs the service.
func NewAccessService(client *redis.Client) *AccessService {
	return &AccessService{redis: client}
}

func lockKey(roomID string) string {
	return fmt.Sprintf("keyless:room:%s", roomID)
}

// Toggle flips the lock state for a room and returns the new state. Only the
// room's tenant or a trustee of that tenant may toggle.
func (s *AccessService) Toggle(ctx context.Context, actor *auth.Principal, roomID string) (LockState, error) {
	if roomID == "" {
		return "", apperrors.NewValidationError("room_id required", nil)
	}
	if !auth.Can(actor, auth.ActionToggleKeylessEntry, auth.Target{RoomID: roomID}) {
		return "", apperrors.NewForbidden("keyless entry limited to the room's tenant and trustees")
	}

	current, err := s.State(ctx, actor, roomID)
	if err != nil {
		return "", err
	}
	next := LockStateLocked
	if current == LockStateLocked {
		next = LockStateUnlocked
	}
	if err := s.redis.Set(ctx, lockKey(roomID), string(next), 0).Err(); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return next, nil
}

// State reads the current lock state for a room.
func (s *AccessService) State(ctx context.Context, actor *auth.Principal, roomID string) (LockState, error) {
	if roomID == "" {
		return "", apperrors.NewValidationError("room_id required", nil)
	}
	if !auth.Can(actor, auth.ActionToggleKeylessEntry, auth.Target{RoomID: roomID}) {
		return "", apperrors.NewForbidden("keyless entry limited to the room's tenant and trustees")
	}

	val, err := s.redis.Get(ctx, lockKey(roomID)).Result()
	if errors.Is(err, redis.Nil) {
		return LockStateLocked, nil
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if LockState(val) == LockStateUnlocked {
		return LockStateUnlocked, nil
	}
	return LockStateLocked, nil
}
