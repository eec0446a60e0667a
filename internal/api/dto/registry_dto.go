package dto

type CreateUserRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,max=100,email"`
}

type CreateAssetRequest struct {
	Name   string   `json:"name" form:"name" binding:"required,max=100"`
	Value  *float64 `json:"value" form:"value" binding:"required"`
	UserID int64    `json:"user_id" form:"user_id" binding:"required,gt=0"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type OwnerDTO struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type AssetDTO struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Value float64  `json:"value"`
	Owner OwnerDTO `json:"owner"`
}
