package store

import (
	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

// ActorSystem is recorded as changed_by when a project has no owner.
const ActorSystem = "System"

type fieldChange struct {
	field    string
	oldValue string
	newValue string
}

// actorFor resolves the audit actor: the project's current owner at the moment
// of the mutation, not whoever owned it when earlier records were written.
func actorFor(tx *gorm.DB, project *models.Project) string {
	if project.OwnerID == nil {
		return ActorSystem
	}
	var owner models.Engineer
	if err := tx.First(&owner, *project.OwnerID).Error; err != nil {
		return ActorSystem
	}
	return owner.Name
}

// recordChanges appends one immutable history row per changed field, in the
// order the fields were evaluated.
func recordChanges(tx *gorm.DB, projectID uint, actor string, changes []fieldChange) error {
	for _, c := range changes {
		row := models.ChangeHistory{
			ProjectID: projectID,
			Field:     c.field,
			OldValue:  c.oldValue,
			NewValue:  c.newValue,
			ChangedBy: actor,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
