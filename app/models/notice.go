package models

import "time"

// Notice is an announcement published to a role audience.
type Notice struct {
	ID          string         `json:"id"`
	Title       string         `json:"title" validate:"required"`
	Content     string         `json:"content" validate:"required"`
	PublishDate time.Time      `json:"publish_date"`
	ExpiryDate  *time.Time     `json:"expiry_date,omitempty"`
	Audience    NoticeAudience `json:"audience"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Holiday is a school holiday shown on every calendar.
type Holiday struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	HolidayDate time.Time `json:"holiday_date"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
