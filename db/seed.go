package db

import (
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/opsdash-dev/opsdash/internal/models"
	"github.com/opsdash-dev/opsdash/internal/store"
)

func seedDate(value string) datatypes.Date {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Invalid seed date %q: %v", value, err)
	}
	return datatypes.Date(t)
}

func seedDatePtr(value string) *datatypes.Date {
	d := seedDate(value)
	return &d
}

type seedNPT struct {
	Type  string
	Hours int
}

type seedEngineer struct {
	Name           string
	Role           string
	TotalHours     int
	NonProjectTime []seedNPT
}

type seedExpense struct {
	Date        string
	Description string
	Amount      float64
	Category    string
}

type seedTask struct {
	Engineer     string
	HoursPerWeek int
}

type seedMilestone struct {
	Name        string
	PlannedDate string
	ActualDate  string
	Status      string
}

type seedProject struct {
	Name                  string
	Owner                 string
	Priority              string
	Status                string
	Progress              int
	StartDate             string
	EndDate               string
	EstimatedHoursPerWeek int
	Budget                float64
	Spent                 float64
	Notes                 string
	Expenses              []seedExpense
	Tasks                 []seedTask
	Milestones            []seedMilestone
}

var seedEngineers = []seedEngineer{
	{Name: "Mike Rodriguez", Role: "Senior Operations Engineer", TotalHours: 40,
		NonProjectTime: []seedNPT{{"Line Support", 8}, {"Meetings", 3}}},
	{Name: "Sarah Chen", Role: "Process Engineer", TotalHours: 40,
		NonProjectTime: []seedNPT{{"Line Support", 10}, {"Training", 2}}},
	{Name: "Tom Williams", Role: "Quality Engineer", TotalHours: 40,
		NonProjectTime: []seedNPT{{"Line Support", 15}, {"Equipment Maintenance", 5}, {"Meetings", 2}}},
	{Name: "Jessica Park", Role: "Manufacturing Engineer", TotalHours: 40,
		NonProjectTime: []seedNPT{{"Line Support", 12}, {"Documentation", 3}}},
}

var seedProjects = []seedProject{
	{
		Name: "Battery Stacking Automation", Owner: "Mike Rodriguez",
		Priority: "Critical", Status: "On Track", Progress: 65,
		StartDate: "2024-11-01", EndDate: "2025-06-30",
		EstimatedHoursPerWeek: 20, Budget: 125000, Spent: 81250,
		Notes: "Procurement phase complete. Installation begins next month.",
		Expenses: []seedExpense{
			{"2024-11-15", "Equipment procurement", 75000, "Equipment"},
			{"2024-12-01", "Installation contractor deposit", 6250, "Labor"},
		},
		Tasks: []seedTask{{"Mike Rodriguez", 15}, {"Sarah Chen", 10}},
		Milestones: []seedMilestone{
			{"Equipment Procurement", "2024-12-15", "2024-12-10", "completed"},
			{"Installation Complete", "2025-03-01", "", "pending"},
			{"System Testing", "2025-05-15", "", "pending"},
		},
	},
	{
		Name: "FAT Protocol Development", Owner: "Sarah Chen",
		Priority: "High", Status: "At Risk", Progress: 45,
		StartDate: "2024-10-15", EndDate: "2025-04-30",
		EstimatedHoursPerWeek: 25, Budget: 45000, Spent: 28500,
		Notes: "Resource constraints delaying completion. Need additional test equipment.",
		Expenses: []seedExpense{
			{"2024-10-20", "Test equipment", 18500, "Equipment"},
			{"2024-11-10", "Consultant fees", 10000, "Services"},
		},
		Tasks: []seedTask{{"Sarah Chen", 20}, {"Tom Williams", 5}},
		Milestones: []seedMilestone{
			{"Protocol Draft", "2024-11-30", "2024-12-05", "completed"},
			{"Validation Testing", "2025-02-15", "", "at-risk"},
			{"Final Approval", "2025-04-30", "", "pending"},
		},
	},
	{
		Name: "Volume Ramp Preparation", Owner: "Mike Rodriguez",
		Priority: "Critical", Status: "Planned", Progress: 0,
		StartDate: "2026-03-01", EndDate: "2026-12-31",
		EstimatedHoursPerWeek: 30, Budget: 500000, Spent: 0,
		Notes: "2027 volume increase preparation. Equipment and process validation.",
		Tasks: []seedTask{{"Mike Rodriguez", 15}, {"Jessica Park", 15}},
		Milestones: []seedMilestone{
			{"Capacity Analysis", "2026-04-15", "", "pending"},
			{"Equipment Orders", "2026-06-30", "", "pending"},
			{"Line Validation", "2026-10-31", "", "pending"},
		},
	},
	{
		Name: "Quality System Upgrade", Owner: "Tom Williams",
		Priority: "Medium", Status: "Behind", Progress: 30,
		StartDate: "2024-09-01", EndDate: "2025-03-31",
		EstimatedHoursPerWeek: 15, Budget: 85000, Spent: 52000,
		Notes: "Software integration issues. Vendor support required.",
		Expenses: []seedExpense{
			{"2024-09-15", "Software license", 35000, "Software"},
			{"2024-10-01", "Vendor implementation", 17000, "Services"},
		},
		Tasks: []seedTask{{"Tom Williams", 10}, {"Jessica Park", 5}},
		Milestones: []seedMilestone{
			{"Software Selection", "2024-10-15", "2024-11-01", "completed"},
			{"Data Migration", "2025-01-15", "", "at-risk"},
			{"Go-Live", "2025-03-31", "", "pending"},
		},
	},
}

// SeedDatabase loads the sample dataset when the engineers table is empty,
// then recomputes every seeded project's milestone windows so the derived
// dates are consistent from the first request.
func SeedDatabase() error {
	var existing models.Engineer
	err := DB.First(&existing).Error

	if err == nil {
		log.Println("Database already seeded")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Seeding database with sample data...")

	var projectIDs []uint

	err = DB.Transaction(func(tx *gorm.DB) error {
		engineers := make(map[string]*models.Engineer, len(seedEngineers))

		for _, se := range seedEngineers {
			engineer := &models.Engineer{Name: se.Name, Role: se.Role, TotalHours: se.TotalHours}
			if err := tx.Create(engineer).Error; err != nil {
				return err
			}
			engineers[se.Name] = engineer

			for _, npt := range se.NonProjectTime {
				record := models.EngineerNonProjectTime{
					EngineerID: engineer.ID,
					Type:       npt.Type,
					Hours:      npt.Hours,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
		}

		for _, sp := range seedProjects {
			project := models.Project{
				Name:                  sp.Name,
				Priority:              sp.Priority,
				Status:                sp.Status,
				Progress:              sp.Progress,
				StartDate:             seedDatePtr(sp.StartDate),
				EndDate:               seedDatePtr(sp.EndDate),
				EstimatedHoursPerWeek: sp.EstimatedHoursPerWeek,
				Budget:                sp.Budget,
				Spent:                 sp.Spent,
				Notes:                 sp.Notes,
			}
			if owner, ok := engineers[sp.Owner]; ok {
				project.OwnerID = &owner.ID
			}
			if err := tx.Create(&project).Error; err != nil {
				return err
			}
			projectIDs = append(projectIDs, project.ID)

			for _, se := range sp.Expenses {
				expense := models.Expense{
					ProjectID:   project.ID,
					Date:        seedDate(se.Date),
					Description: se.Description,
					Amount:      se.Amount,
					Category:    se.Category,
				}
				if err := tx.Create(&expense).Error; err != nil {
					return err
				}
			}

			for _, st := range sp.Tasks {
				engineer, ok := engineers[st.Engineer]
				if !ok {
					continue
				}
				task := models.Task{
					ProjectID:    project.ID,
					EngineerID:   engineer.ID,
					HoursPerWeek: st.HoursPerWeek,
				}
				if err := tx.Create(&task).Error; err != nil {
					return err
				}
			}

			for _, sm := range sp.Milestones {
				milestone := models.Milestone{
					ProjectID:   project.ID,
					Name:        sm.Name,
					PlannedDate: seedDate(sm.PlannedDate),
					Status:      sm.Status,
				}
				if sm.ActualDate != "" {
					milestone.ActualDate = seedDatePtr(sm.ActualDate)
				}
				if err := tx.Create(&milestone).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		return err
	}

	for _, id := range projectIDs {
		if err := store.RecalculateSchedule(DB, id); err != nil {
			return err
		}
	}

	log.Println("Database seeded successfully")
	return nil
}
