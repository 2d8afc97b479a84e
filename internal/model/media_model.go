package model

import (
	"time"

	"github.com/google/uuid"
)

type Media struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       *string   `gorm:"type:text"`
	Description *string   `gorm:"type:text"`
	Path        *string   `gorm:"type:text"` // storage object key
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Media) TableName() string {
	return "media"
}
