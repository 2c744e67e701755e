package models

import "time"

// Tag is a global labeled marker; not board-scoped.
type Tag struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:50;uniqueIndex" json:"name"`
	Color     string    `gorm:"not null;size:7" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardTag links cards and tags many-to-many.
type CardTag struct {
	CardID    string    `gorm:"size:64;primaryKey" json:"card_id"`
	TagID     string    `gorm:"size:64;primaryKey" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
	Card      Card      `gorm:"foreignKey:CardID" json:"-"`
	Tag       Tag       `gorm:"foreignKey:TagID" json:"-"`
}
