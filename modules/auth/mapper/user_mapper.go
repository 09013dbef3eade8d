package mapper

import (
	"meteocal/modules/auth/dto"
	"meteocal/modules/auth/entity"
)

func ToUserDTO(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		UserGroup: user.UserGroup,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []entity.User) []dto.UserResponse {
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *ToUserDTO(&users[i]))
	}
	return result
}
