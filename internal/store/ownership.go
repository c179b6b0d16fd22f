package store

import (
	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
)

// Deletion policy per parent/child relationship. Children are either
// strong-owned (cascade: the row dies with its parent) or weak-referenced
// (detach: the referencing column is cleared and the row survives).
type deletePolicy int

const (
	policyCascade deletePolicy = iota
	policyDetach
)

type childRule struct {
	child  any          // model holding the reference
	fk     string       // column referencing the parent
	policy deletePolicy

	// before runs ahead of the rule itself, for grandchildren that are only
	// reachable through this child.
	before func(tx *gorm.DB, parentID uint) error
}

// Engineer children. Detach runs before the cascades so owned projects are
// preserved with a cleared owner even if a later step fails the transaction.
var engineerRules = []childRule{
	{child: &models.Project{}, fk: "owner_id", policy: policyDetach},
	{child: &models.Task{}, fk: "engineer_id", policy: policyCascade},
	{child: &models.EngineerNonProjectTime{}, fk: "engineer_id", policy: policyCascade},
	{child: &models.MilestoneAssignment{}, fk: "engineer_id", policy: policyCascade},
}

// Project children are all strong-owned. Milestone assignments hang off
// milestones, so they go first via the before hook.
var projectRules = []childRule{
	{
		child:  &models.Milestone{},
		fk:     "project_id",
		policy: policyCascade,
		before: func(tx *gorm.DB, projectID uint) error {
			sub := tx.Model(&models.Milestone{}).Select("id").Where("project_id = ?", projectID)
			return tx.Where("milestone_id IN (?)", sub).Delete(&models.MilestoneAssignment{}).Error
		},
	},
	{child: &models.Expense{}, fk: "project_id", policy: policyCascade},
	{child: &models.Task{}, fk: "project_id", policy: policyCascade},
	{child: &models.ChangeHistory{}, fk: "project_id", policy: policyCascade},
	{child: &models.ProjectYearlyBudget{}, fk: "project_id", policy: policyCascade},
	{child: &models.ProjectJiraIssue{}, fk: "project_id", policy: policyCascade},
}

var milestoneRules = []childRule{
	{child: &models.MilestoneAssignment{}, fk: "milestone_id", policy: policyCascade},
}

func applyDeleteRules(tx *gorm.DB, rules []childRule, parentID uint) error {
	for _, rule := range rules {
		if rule.before != nil {
			if err := rule.before(tx, parentID); err != nil {
				return err
			}
		}
		switch rule.policy {
		case policyDetach:
			if err := tx.Model(rule.child).Where(rule.fk+" = ?", parentID).Update(rule.fk, nil).Error; err != nil {
				return err
			}
		case policyCascade:
			if err := tx.Where(rule.fk+" = ?", parentID).Delete(rule.child).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
