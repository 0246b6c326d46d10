// file: models/user.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 自定义类型 UserRank, UserRole, UserStatus
type UserRank string
type UserRole string
type UserStatus string

const (
	RankRookie  UserRank = "Rookie"
	RankAgent   UserRank = "Agent"
	RankAnalyst UserRank = "Analyst"
	RankExpert  UserRank = "Expert"
	RankElite   UserRank = "Elite"

	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"

	StatusActive   UserStatus = "active"
	StatusDisabled UserStatus = "disabled"
)

type User struct {
	ID        string     `gorm:"primarykey;size:36" json:"id"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Name      string     `gorm:"size:50;not null" json:"name"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Rank      UserRank   `gorm:"type:enum('Rookie','Agent','Analyst','Expert','Elite');not null;default:'Rookie'" json:"rank"`
	Score     uint       `gorm:"not null;default:0" json:"score"`
	Role      UserRole   `gorm:"type:enum('user','admin');not null;default:'user'" json:"role"`
	Status    UserStatus `gorm:"type:enum('active','disabled');not null;default:'active'" json:"status"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "arlab_user"
}

// BeforeCreate GORM Hook，生成 UUID 并统一邮箱为小写
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return
}

// BeforeSave GORM Hook，在保存用户前自动哈希密码
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	// 新用户创建时（BeforeCreate 尚未分配 ID）或更新密码时执行哈希
	if u.ID == "" || tx.Statement.Changed("Password") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashedPassword)
	}
	return
}

// CheckPassword 校验密码是否正确
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
