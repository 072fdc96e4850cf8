package domain

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrImageNotFound   = errors.New("gallery image not found")
	ErrInquiryNotFound = errors.New("inquiry not found")
	ErrUserNotFound    = errors.New("admin user not found")

	ErrInvalidVehicleData = errors.New("invalid vehicle data")
	ErrInvalidCategory    = errors.New("invalid gallery category")
	ErrInvalidInquiryData = errors.New("invalid inquiry data")
)
