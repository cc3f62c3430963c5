package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/zaika-next/internal/models"
)

const userAuthStateTTL = 5 * time.Minute

// UserAuthState 鉴权中间件使用的用户状态快照
type UserAuthState struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// BuildUserAuthState 从用户记录构造状态快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID: user.ID,
		Role:   user.Role,
	}
}

// GetUserAuthState 读取用户状态快照
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户状态快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, userAuthStateTTL)
}

// DelUserAuthState 删除用户状态快照
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}
