package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

type YearlyBudgetInput struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

type CreateProjectInput struct {
	Name                  string              `json:"name" binding:"required"`
	Owner                 string              `json:"owner"`
	OwnerID               *uint               `json:"ownerId"`
	Priority              string              `json:"priority"`
	Status                string              `json:"status"`
	Progress              int                 `json:"progress"`
	StartDate             string              `json:"startDate"`
	EndDate               string              `json:"endDate"`
	EstimatedHoursPerWeek int                 `json:"estimatedHoursPerWeek"`
	Budget                float64             `json:"budget"`
	Spent                 float64             `json:"spent"`
	Notes                 string              `json:"notes"`
	Location              string              `json:"location"`
	JiraKey               string              `json:"jiraKey"`
	YearlyBudgets         []YearlyBudgetInput `json:"yearlyBudgets"`
}

type UpdateProjectInput struct {
	Name                  Optional[string]              `json:"name"`
	Owner                 Optional[string]              `json:"owner"`
	OwnerID               Optional[*uint]               `json:"ownerId"`
	Priority              Optional[string]              `json:"priority"`
	Status                Optional[string]              `json:"status"`
	Progress              Optional[int]                 `json:"progress"`
	StartDate             Optional[string]              `json:"startDate"`
	EndDate               Optional[string]              `json:"endDate"`
	EstimatedHoursPerWeek Optional[int]                 `json:"estimatedHoursPerWeek"`
	Budget                Optional[float64]             `json:"budget"`
	Spent                 Optional[float64]             `json:"spent"`
	Notes                 Optional[string]              `json:"notes"`
	Location              Optional[string]              `json:"location"`
	JiraKey               Optional[string]              `json:"jiraKey"`
	YearlyBudgets         Optional[[]YearlyBudgetInput] `json:"yearlyBudgets"`
}

// projectPreloads loads the full representation: a project embeds all of its
// strong-owned children.
func projectPreloads(gdb *gorm.DB) *gorm.DB {
	return gdb.
		Preload("Owner").
		Preload("Expenses").
		Preload("Milestones.Assignments.Engineer").
		Preload("Tasks.Engineer").
		Preload("ChangeHistory").
		Preload("JiraIssues").
		Preload("YearlyBudgets")
}

func CreateProject(gdb *gorm.DB, in CreateProjectInput) (*models.Project, error) {
	if in.Name == "" {
		return nil, invalid("name", "name is required")
	}

	startDate, err := ParseDatePtr("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := ParseDatePtr("endDate", in.EndDate)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		Name:                  in.Name,
		Priority:              in.Priority,
		Status:                in.Status,
		Progress:              in.Progress,
		StartDate:             startDate,
		EndDate:               endDate,
		EstimatedHoursPerWeek: in.EstimatedHoursPerWeek,
		Budget:                in.Budget,
		Spent:                 in.Spent,
		Notes:                 in.Notes,
		Location:              in.Location,
		JiraKey:               in.JiraKey,
	}
	if project.Priority == "" {
		project.Priority = "Medium"
	}
	if project.Status == "" {
		project.Status = "Planned"
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		ownerID, err := resolveOwner(tx, in.OwnerID, in.Owner)
		if err != nil {
			return err
		}
		project.OwnerID = ownerID

		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		return replaceYearlyBudgets(tx, project.ID, in.YearlyBudgets)
	})
	if err != nil {
		return nil, err
	}

	return GetProject(gdb, project.ID)
}

// resolveOwner finds the owning engineer by id, or by name when only a name
// was supplied. An unknown name leaves the project unowned, matching create
// semantics where ownership is optional.
func resolveOwner(tx *gorm.DB, ownerID *uint, ownerName string) (*uint, error) {
	if ownerID != nil {
		return ownerID, nil
	}
	if ownerName == "" {
		return nil, nil
	}
	var owner models.Engineer
	if err := tx.Where("name = ?", ownerName).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &owner.ID, nil
}

// replaceYearlyBudgets deletes all budget rows for the project and inserts the
// supplied ones. Rows with a non-positive amount are silently dropped.
func replaceYearlyBudgets(tx *gorm.DB, projectID uint, budgets []YearlyBudgetInput) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectYearlyBudget{}).Error; err != nil {
		return err
	}
	for _, yb := range budgets {
		if yb.Amount <= 0 {
			continue
		}
		row := models.ProjectYearlyBudget{
			ProjectID: projectID,
			Year:      yb.Year,
			Amount:    yb.Amount,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func GetProject(gdb *gorm.DB, id uint) (*models.Project, error) {
	var project models.Project
	if err := projectPreloads(gdb).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("project", id)
		}
		return nil, err
	}
	return &project, nil
}

func ListProjects(gdb *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	if err := projectPreloads(gdb).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject applies a sparse patch, replaces yearly budgets when supplied,
// and appends one audit row per tracked field whose value actually changed.
// Tracked fields: Name, Priority, Status, Start Date, End Date.
func UpdateProject(gdb *gorm.DB, id uint, in UpdateProjectInput) (*models.Project, error) {
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("project", id)
			}
			return err
		}

		var changes []fieldChange

		if name, ok := in.Name.Get(); ok {
			if name != project.Name {
				changes = append(changes, fieldChange{"Name", project.Name, name})
			}
			project.Name = name
		}

		if ownerID, ok := in.OwnerID.Get(); ok {
			project.OwnerID = ownerID
		} else if ownerName, ok := in.Owner.Get(); ok && ownerName != "" {
			var owner models.Engineer
			if err := tx.Where("name = ?", ownerName).First(&owner).Error; err == nil {
				project.OwnerID = &owner.ID
			}
		}

		if priority, ok := in.Priority.Get(); ok {
			if priority != project.Priority {
				changes = append(changes, fieldChange{"Priority", project.Priority, priority})
			}
			project.Priority = priority
		}

		if status, ok := in.Status.Get(); ok {
			if status != project.Status {
				changes = append(changes, fieldChange{"Status", project.Status, status})
			}
			project.Status = status
		}

		if progress, ok := in.Progress.Get(); ok {
			project.Progress = progress
		}

		if raw, ok := in.StartDate.Get(); ok {
			newDate, err := ParseDatePtr("startDate", raw)
			if err != nil {
				return err
			}
			oldStr, newStr := FormatDatePtr(project.StartDate), FormatDatePtr(newDate)
			if oldStr != newStr {
				changes = append(changes, fieldChange{"Start Date", oldStr, newStr})
			}
			project.StartDate = newDate
		}

		if raw, ok := in.EndDate.Get(); ok {
			newDate, err := ParseDatePtr("endDate", raw)
			if err != nil {
				return err
			}
			oldStr, newStr := FormatDatePtr(project.EndDate), FormatDatePtr(newDate)
			if oldStr != newStr {
				changes = append(changes, fieldChange{"End Date", oldStr, newStr})
			}
			project.EndDate = newDate
		}

		if hours, ok := in.EstimatedHoursPerWeek.Get(); ok {
			project.EstimatedHoursPerWeek = hours
		}
		if budget, ok := in.Budget.Get(); ok {
			project.Budget = budget
		}
		if spent, ok := in.Spent.Get(); ok {
			project.Spent = spent
		}
		if notes, ok := in.Notes.Get(); ok {
			project.Notes = notes
		}
		if location, ok := in.Location.Get(); ok {
			project.Location = location
		}
		if jiraKey, ok := in.JiraKey.Get(); ok {
			project.JiraKey = jiraKey
		}

		if budgets, ok := in.YearlyBudgets.Get(); ok {
			if err := replaceYearlyBudgets(tx, project.ID, budgets); err != nil {
				return err
			}
		}

		if err := tx.Save(&project).Error; err != nil {
			return err
		}

		actor := actorFor(tx, &project)
		return recordChanges(tx, project.ID, actor, changes)
	})
	if err != nil {
		return nil, err
	}

	return GetProject(gdb, id)
}

// DeleteProject cascades every strong-owned child per the deletion-policy
// table, then removes the project row.
func DeleteProject(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("project", id)
			}
			return err
		}

		if err := applyDeleteRules(tx, projectRules, id); err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

func AddJiraIssue(gdb *gorm.DB, projectID uint, jiraKey string) (*models.ProjectJiraIssue, error) {
	if jiraKey == "" {
		return nil, invalid("jiraKey", "jiraKey is required")
	}

	var issue models.ProjectJiraIssue
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("project", projectID)
			}
			return err
		}

		var existing models.ProjectJiraIssue
		err := tx.Where("project_id = ? AND jira_key = ?", projectID, jiraKey).First(&existing).Error
		if err == nil {
			return invalid("jiraKey", "Jira issue %s is already linked to this project", jiraKey)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		issue = models.ProjectJiraIssue{ProjectID: projectID, JiraKey: jiraKey}
		return tx.Create(&issue).Error
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func ListJiraIssues(gdb *gorm.DB, projectID uint) ([]models.ProjectJiraIssue, error) {
	if _, err := GetProject(gdb, projectID); err != nil {
		return nil, err
	}
	var issues []models.ProjectJiraIssue
	if err := gdb.Where("project_id = ?", projectID).Order("id ASC").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

func DeleteJiraIssue(gdb *gorm.DB, projectID uint, jiraKey string) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var issue models.ProjectJiraIssue
		err := tx.Where("project_id = ? AND jira_key = ?", projectID, jiraKey).First(&issue).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("jira issue", projectID)
			}
			return err
		}
		return tx.Delete(&issue).Error
	})
}
