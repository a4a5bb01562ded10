package dto

import "github.com/yukikurage/request-board/internal/models"

// UserDTO represents a user in API responses. The stored password is never
// included.
type UserDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// AdminStateDTO represents the session's admin gate
type AdminStateDTO struct {
	IsAdmin       bool `json:"is_admin"`
	PromptVisible bool `json:"prompt_visible"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

func ToAdminStateDTO(state models.AdminState) AdminStateDTO {
	return AdminStateDTO{
		IsAdmin:       state.Admin,
		PromptVisible: state.PromptVisible,
	}
}
