package model

// AdminUsername is the fixed username presented for admin principals, which
// carry no user record of their own.
const AdminUsername = "admin"

// Identity is the normalized principal attached to a request after a
// successful credential match. Admin identities have an empty UserID.
type Identity struct {
	Username string `json:"username"`
	UserID   string `json:"userId,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

func UserIdentity(user *User) Identity {
	return Identity{
		Username: user.Username,
		UserID:   user.ID.Hex(),
		IsAdmin:  false,
	}
}

func AdminIdentity() Identity {
	return Identity{
		Username: AdminUsername,
		IsAdmin:  true,
	}
}
