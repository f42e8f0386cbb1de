package testutils

import (
	"time"

	"taskboard/models"

	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture user's hash
const TestPassword = "password123"

func CreateTestUser(username string) *models.User {
	// MinCost keeps fixture creation fast; production hashing uses DefaultCost
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	return &models.User{
		Username:  username,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
}

func CreateTestTask(userID int, title string) *models.Task {
	now := time.Now()
	description := "Test description"

	return &models.Task{
		Title:       title,
		Description: &description,
		IsComplete:  false,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
