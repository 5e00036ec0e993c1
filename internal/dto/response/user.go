package response

import (
	"filmorate/internal/data/entity"
)

type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday string  `json:"birthday"`
	Friends  []int64 `json:"friends"`
}

func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Login:    user.Login,
		Name:     user.Name,
		Birthday: user.Birthday.Format(dateLayout),
		Friends:  user.Friends,
	}
	if resp.Friends == nil {
		resp.Friends = []int64{}
	}
	return resp
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, UserToResponse(user))
	}
	return out
}
