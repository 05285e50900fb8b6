package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	RoleKeyPrefix = "role:%d"
)

const (
	UserTTL = 5 * time.Minute
	RoleTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RoleKey(roleID uint) string {
	return fmt.Sprintf(RoleKeyPrefix, roleID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRole(ctx context.Context, roleID uint) {
	Invalidate(ctx, RoleKey(roleID))
}
