package model

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
}

type Asset struct {
	ID     int64   `db:"id"`
	Name   string  `db:"name"`
	Value  float64 `db:"value"`
	UserID int64   `db:"user_id"`
}

// AssetWithOwner is an asset row joined with its owner's username
type AssetWithOwner struct {
	Asset
	OwnerUsername string `db:"username"`
}
