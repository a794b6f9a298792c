package dto

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint    `json:"id"`
	Nom       string  `json:"nom"`
	Prenom    string  `json:"prenom"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	EstActif  bool    `json:"est_actif"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
