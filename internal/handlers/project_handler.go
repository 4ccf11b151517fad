package handlers

import (
	"net/http"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
)

type ProjectInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	Skills      string     `json:"skills"`
	BudgetMin   float64    `json:"budgetMin" binding:"gte=0"`
	BudgetMax   float64    `json:"budgetMax" binding:"gtefield=BudgetMin"`
	Deadline    *time.Time `json:"deadline"`
}

// CreateProjectHandler posts a new project in "open" status on behalf of the
// authenticated client.
func CreateProjectHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project data: " + err.Error()})
		return
	}

	project := models.Project{
		ClientID:    userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Skills:      input.Skills,
		BudgetMin:   input.BudgetMin,
		BudgetMax:   input.BudgetMax,
		Status:      "open",
		Deadline:    input.Deadline,
	}
	if err := config.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjectsHandler returns projects with optional status, category,
// free-text and budget filters.
func ListProjectsHandler(c *gin.Context) {
	query := config.DB.Model(&models.Project{}).Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", "open")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR skills ILIKE ?", like, like, like)
	}
	if mine := c.Query("mine"); mine == "true" {
		if userID, ok := currentUserID(c); ok {
			query = query.Where("client_id = ?", userID)
		}
	}
	if budgetMin := c.Query("budgetMin"); budgetMin != "" {
		query = query.Where("budget_max >= ?", budgetMin)
	}
	if budgetMax := c.Query("budgetMax"); budgetMax != "" {
		query = query.Where("budget_min <= ?", budgetMax)
	}

	var totalRows int64
	query.Count(&totalRows)

	var projects []models.Project
	if err := query.Scopes(Paginate(c)).Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch projects"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, projects, totalRows))
}

// GetProjectHandler retrieves a single project with its bids. Bid details
// are only included for the project owner or an admin; other viewers get
// the bid count only.
func GetProjectHandler(c *gin.Context) {
	var project models.Project
	if err := config.DB.First(&project, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	userID, _ := currentUserID(c)

	var bidCount int64
	config.DB.Model(&models.Bid{}).Where("project_id = ? AND status <> ?", project.ID, "withdrawn").Count(&bidCount)

	response := gin.H{"project": project, "bidCount": bidCount}
	if userID == project.ClientID || isAdmin(c) {
		var bids []models.Bid
		config.DB.Where("project_id = ? AND status <> ?", project.ID, "withdrawn").
			Order("created_at asc").Find(&bids)
		response["bids"] = bids
	}

	c.JSON(http.StatusOK, response)
}

// UpdateProjectHandler edits an open project. Assigned or finished projects
// are frozen.
func UpdateProjectHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var project models.Project
	if err := config.DB.First(&project, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if project.ClientID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can edit it"})
		return
	}
	if project.Status != "open" {
		c.JSON(http.StatusConflict, gin.H{"error": "Only open projects can be edited"})
		return
	}

	var input ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project data: " + err.Error()})
		return
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Category = input.Category
	project.Skills = input.Skills
	project.BudgetMin = input.BudgetMin
	project.BudgetMax = input.BudgetMax
	project.Deadline = input.Deadline

	if err := config.DB.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// CancelProjectHandler cancels an open project before any bid is accepted.
func CancelProjectHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var project models.Project
	if err := config.DB.First(&project, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if project.ClientID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can cancel it"})
		return
	}
	if project.Status != "open" {
		c.JSON(http.StatusConflict, gin.H{"error": "Only open projects can be cancelled"})
		return
	}

	if err := config.DB.Model(&project).Update("status", "cancelled").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not cancel project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project cancelled"})
}
