package models

import (
	"gorm.io/gorm"
)

// Chat is a conversation between the two parties of a contract. Admins can
// be added as participants when a dispute is opened.
type Chat struct {
	gorm.Model
	Name        string `json:"name"`
	ContractID  *uint  `json:"contractId,omitempty" gorm:"index"`
	CreatedByID uint   `json:"createdById"`
	CreatedBy   User   `json:"createdBy" gorm:"foreignKey:CreatedByID"`
	Participants []User `json:"participants" gorm:"many2many:chat_participants;"`
}

// ChatParticipant is the join table for chat membership.
type ChatParticipant struct {
	ChatID uint   `json:"chatId" gorm:"primaryKey"`
	UserID uint   `json:"userId" gorm:"primaryKey"`
	Role   string `json:"role"` // 'member', 'admin'
}

// ChatMessage is one message in a chat.
type ChatMessage struct {
	gorm.Model
	ChatID   uint   `json:"chatId" gorm:"index"`
	UserID   uint   `json:"userId"`
	User     User   `json:"user" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Type     string `json:"type" gorm:"type:varchar(20);not null;default:'text'"` // text, file
	Content  string `json:"content"`
	FileURL  string `json:"fileUrl,omitempty" gorm:"type:varchar(255)"`
	FileName string `json:"fileName,omitempty" gorm:"type:varchar(255)"`
	FileSize int64  `json:"fileSize,omitempty"`
}

// ChatUserResponse is a trimmed user shape for chat listings.
type ChatUserResponse struct {
	ID       uint   `json:"ID"`
	FullName string `json:"fullName"`
	PhotoURL string `json:"photoUrl"`
}
