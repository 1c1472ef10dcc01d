package services

import (
	"errors"
	"math"
	"mobile-shop/models"
	"mobile-shop/repositories"
	"mobile-shop/utils"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{
		userRepo: repositories.NewUserRepository(),
	}
}

func (s *UserService) GetAllUsers(page, limit int) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, totalItems, err := s.userRepo.FindAll(page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return &models.PaginationResponse{
		Success: true,
		Message: "Customers retrieved successfully",
		Data:    users,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: totalItems,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *UserService) GetUserByID(id int) (*models.UserWithProfile, error) {
	return s.userRepo.GetUserWithProfile(id)
}

func (s *UserService) UpdateUser(id int, req models.UpdateUserRequest) (*models.UserWithProfile, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Email != "" && req.Email != user.Email {
		existingUser, _ := s.userRepo.FindByEmail(req.Email)
		if existingUser != nil {
			return nil, errors.New("email already registered")
		}
		user.Email = req.Email
	}

	if req.Role != "" {
		user.Role = req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if req.FullName != "" || req.Phone != "" {
		profile, err := s.userRepo.GetProfile(id)
		if err != nil {
			return nil, err
		}

		if req.FullName != "" {
			profile.FullName = req.FullName
		}
		if req.Phone != "" {
			profile.Phone = req.Phone
		}

		if err := s.userRepo.UpdateProfile(profile); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetUserWithProfile(id)
}

func (s *UserService) DeleteUser(id int) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return errors.New("user not found")
	}

	profile, err := s.userRepo.GetProfile(id)
	if err == nil && profile.PhotoURL != "" {
		utils.DeleteFile(profile.PhotoURL)
	}

	return s.userRepo.Delete(user.ID)
}
