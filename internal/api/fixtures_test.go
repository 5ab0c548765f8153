package api

import (
	"time"

	"github.com/svitlogram/feedgate/internal/model"
)

func userFixture(id int64, username string) model.UserProfile {
	return model.UserProfile{
		ID:             id,
		Username:       username,
		FirstName:      "Test",
		LastName:       "User",
		Avatar:         "https://cdn.example.com/avatars/" + username + ".png",
		NumberOfImages: 3,
		CreatedAt:      time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func signupFixture(username string) model.SignupInput {
	return model.SignupInput{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "hunter22",
	}
}
