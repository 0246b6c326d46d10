// file: models/hint.go
package models

// Hint 任务提示。PointDeduction 为使用提示时预留的扣分值，
// 当前提交计分时不消费该字段，留作扩展点
type Hint struct {
	ID             uint32 `gorm:"primarykey"`
	MissionID      string `gorm:"size:64;not null;index"`
	Text           string `gorm:"size:500;not null"`
	PointDeduction uint   `gorm:"not null;default:0"`
	SortOrder      uint   `gorm:"not null;default:0"`
}

func (Hint) TableName() string {
	return "arlab_mission_hint"
}
