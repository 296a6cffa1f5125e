package entities

import "time"

// HistoryRecord remembers a past pick. Name refers to Restaurant.Name but is not a
// foreign key: records for deleted restaurants are kept as-is.
type HistoryRecord struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"index;size:200;not null" json:"name"`
	PickedAt time.Time `gorm:"index;not null" json:"picked_at"`
}

func (HistoryRecord) TableName() string {
	return "history"
}
