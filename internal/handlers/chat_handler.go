package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatListItemResponse is one row in the user's chat list.
type ChatListItemResponse struct {
	ID           uint                      `json:"ID"`
	Name         string                    `json:"name"`
	ContractID   *uint                     `json:"contractId,omitempty"`
	Participants []models.ChatUserResponse `json:"participants"`
	LastMessage  string                    `json:"lastMessage"`
	UpdatedAt    string                    `json:"UpdatedAt"`
}

// ListChatsHandler returns the chats the current user participates in.
func ListChatsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var chats []models.Chat
	config.DB.Preload("Participants").
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id").
		Where("cp.user_id = ?", userID).
		Order("chats.updated_at DESC").
		Find(&chats)

	response := make([]ChatListItemResponse, 0, len(chats))
	for _, chat := range chats {
		var lastMsg models.ChatMessage
		config.DB.Where("chat_id = ?", chat.ID).Order("created_at DESC").Limit(1).First(&lastMsg)

		lastMessageText := lastMsg.Content
		if lastMsg.Type == "file" {
			lastMessageText = lastMsg.FileName
		}

		participants := make([]models.ChatUserResponse, 0, len(chat.Participants))
		for _, p := range chat.Participants {
			photo := p.PhotoURL
			if photo == "" {
				photo = "/static/placeholder.png"
			}
			participants = append(participants, models.ChatUserResponse{
				ID:       p.ID,
				FullName: p.FullName,
				PhotoURL: photo,
			})
		}

		response = append(response, ChatListItemResponse{
			ID:           chat.ID,
			Name:         chat.Name,
			ContractID:   chat.ContractID,
			Participants: participants,
			LastMessage:  lastMessageText,
			UpdatedAt:    chat.UpdatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}

// OpenContractChatHandler opens (or returns) the chat attached to a
// contract. Both parties join automatically; there is at most one chat per
// contract.
func OpenContractChatHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	contractID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract id"})
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, contractID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if contract.ClientID != userID && contract.ProfessionalID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a party to this contract"})
		return
	}

	var existing models.Chat
	if err := config.DB.Preload("Participants").Where("contract_id = ?", contract.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Chat already exists", "chat": existing})
		return
	}

	var project models.Project
	config.DB.First(&project, contract.ProjectID)

	cid := contract.ID
	chat := models.Chat{
		Name:        project.Title,
		ContractID:  &cid,
		CreatedByID: userID,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		var parties []models.User
		if err := tx.Where("id IN ?", []uint{contract.ClientID, contract.ProfessionalID}).Find(&parties).Error; err != nil {
			return err
		}
		return tx.Model(&chat).Association("Participants").Replace(parties)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}

	config.DB.Preload("Participants").First(&chat, chat.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Chat created", "chat": chat})
}

// GetMessagesHandler returns paginated message history for a chat.
func GetMessagesHandler(c *gin.Context) {
	chatID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var participantCount int64
	config.DB.Model(&models.ChatParticipant{}).Where("chat_id = ? AND user_id = ?", chatID, userID).Count(&participantCount)
	if participantCount == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this chat"})
		return
	}

	var messages []models.ChatMessage
	err = config.DB.Preload("User").
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Scopes(Paginate(c)).
		Find(&messages).Error
	if err != nil {
		slog.Error("Failed to fetch messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// UploadChatFileHandler stores a chat attachment and returns its public URL.
func UploadChatFileHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 10<<20+512)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File missing or too large"})
		return
	}

	uploadDir := "./static/uploads/chat"
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create upload directory"})
		return
	}

	ext := filepath.Ext(file.Filename)
	newFileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(uploadDir, newFileName)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save file"})
		return
	}

	fileURL := "/static/uploads/chat/" + newFileName
	c.JSON(http.StatusOK, gin.H{
		"url":  fileURL,
		"name": file.Filename,
		"size": file.Size,
	})
}
