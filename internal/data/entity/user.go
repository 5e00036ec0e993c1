package entity

import (
	"time"
)

type User struct {
	ID       int64     `db:"id"`
	Email    string    `db:"email"`
	Login    string    `db:"login"`
	Name     string    `db:"name"` // display name, defaults to login
	Birthday time.Time `db:"birthday"`

	// Friends holds the ids of befriended users, ascending. The relation
	// is mutual: A lists B if and only if B lists A.
	Friends []int64
}

func (u *User) HasFriend(friendID int64) bool {
	for _, id := range u.Friends {
		if id == friendID {
			return true
		}
	}
	return false
}
