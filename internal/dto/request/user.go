package request

// UserRequest is the body of POST /users and PUT /users. Validation
// tags apply on creation only; updates go through the per-field merge
// in the service instead.
type UserRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"required,birthdate"`
}

func (r *UserRequest) HasName() bool {
	return r.Name != ""
}
