package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
	AdminID     uint    `json:"admin_id"`
	Admin       *User   `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
}
