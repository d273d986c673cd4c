package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/careconnect/homecare/internal/db"
	"github.com/careconnect/homecare/internal/models"
)

var ErrCustomerNotFound = errors.New("customer profile not found")

// CustomerByUser loads the customer profile attached to a login.
func CustomerByUser(userID uint) (*models.CustomerProfile, error) {
	var c models.CustomerProfile
	if err := db.Conn().Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpsertCustomer creates or updates the customer profile for a login.
func UpsertCustomer(userID uint, fullName, email, phone, address string) (*models.CustomerProfile, error) {
	c, err := CustomerByUser(userID)
	if err != nil {
		if !errors.Is(err, ErrCustomerNotFound) {
			return nil, err
		}
		c = &models.CustomerProfile{UserID: userID}
	}
	c.FullName = fullName
	c.Email = email
	c.Phone = phone
	c.Address = address
	if err := db.Conn().Save(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// CaregiverByUser loads the caregiver profile attached to a login.
func CaregiverByUser(userID uint) (*models.CaregiverProfile, error) {
	var cg models.CaregiverProfile
	if err := db.Conn().Where("user_id = ?", userID).First(&cg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaregiverNotFound
		}
		return nil, err
	}
	return &cg, nil
}
