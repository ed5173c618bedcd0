// Package store persists reusable course datasets so a saved program/term
// combination can be rescheduled without resubmitting the course list.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"classscheduler/internal/schedule"
)

var ErrNotFound = errors.New("dataset not found")

// Dataset is a named collection of courses for one program and term.
type Dataset struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Program   string `gorm:"not null"`
	Term      string `gorm:"not null"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Courses []DatasetCourse `gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE"`
}

// DatasetCourse stores one course's wire-form JSON alongside its name for
// ordering and listing.
type DatasetCourse struct {
	ID         string `gorm:"primaryKey"`
	DatasetID  string `gorm:"index;not null"`
	CourseName string `gorm:"not null"`
	CourseData string `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DatasetSummary is the listing row: dataset metadata plus its course count.
type DatasetSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Program     string    `json:"program"`
	Term        string    `json:"term"`
	CourseCount int       `json:"course_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Dataset{}, &DatasetCourse{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveDataset validates and stores a new dataset, returning its generated id.
func (store *Store) SaveDataset(program, term string, courses []schedule.CourseInput) (string, error) {
	if program == "" {
		return "", errors.New("program name is required")
	}
	if term == "" {
		return "", errors.New("term is required")
	}
	if len(courses) == 0 {
		return "", errors.New("courses must be a non-empty array")
	}

	dataset := Dataset{
		ID:       uuid.NewString(),
		Name:     fmt.Sprintf("%s - %s", program, term),
		Program:  program,
		Term:     term,
		IsActive: true,
	}
	for _, course := range courses {
		data, err := json.Marshal(course)
		if err != nil {
			return "", fmt.Errorf("encode course %q: %w", course.Course, err)
		}
		dataset.Courses = append(dataset.Courses, DatasetCourse{
			ID:         uuid.NewString(),
			CourseName: course.Course,
			CourseData: string(data),
		})
	}

	if err := store.db.Create(&dataset).Error; err != nil {
		return "", fmt.Errorf("save dataset: %w", err)
	}
	return dataset.ID, nil
}

// UpdateDataset rewrites an active dataset in place: the name, program and
// term are updated and the stored course rows are replaced wholesale with the
// given ones.
func (store *Store) UpdateDataset(id, program, term string, courses []schedule.CourseInput) error {
	if program == "" {
		return errors.New("program name is required")
	}
	if term == "" {
		return errors.New("term is required")
	}
	if len(courses) == 0 {
		return errors.New("courses must be a non-empty array")
	}

	rows := make([]DatasetCourse, 0, len(courses))
	for _, course := range courses {
		data, err := json.Marshal(course)
		if err != nil {
			return fmt.Errorf("encode course %q: %w", course.Course, err)
		}
		rows = append(rows, DatasetCourse{
			ID:         uuid.NewString(),
			DatasetID:  id,
			CourseName: course.Course,
			CourseData: string(data),
		})
	}

	return store.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Dataset{}).
			Where("id = ? AND is_active = ?", id, true).
			Updates(map[string]any{
				"name":    fmt.Sprintf("%s - %s", program, term),
				"program": program,
				"term":    term,
			})
		if result.Error != nil {
			return fmt.Errorf("update dataset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("dataset_id = ?", id).Delete(&DatasetCourse{}).Error; err != nil {
			return fmt.Errorf("clear dataset courses: %w", err)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("replace dataset courses: %w", err)
		}
		return nil
	})
}

// LoadDataset returns an active dataset and its decoded courses.
func (store *Store) LoadDataset(id string) (*Dataset, []schedule.CourseInput, error) {
	var dataset Dataset
	err := store.db.
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("course_name") }).
		Where("id = ? AND is_active = ?", id, true).
		First(&dataset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}

	courses := make([]schedule.CourseInput, 0, len(dataset.Courses))
	for _, row := range dataset.Courses {
		course, err := decodeCourse(row.CourseData)
		if err != nil {
			// A single corrupt row does not make the dataset unusable.
			continue
		}
		courses = append(courses, course)
	}
	return &dataset, courses, nil
}

// ListDatasets returns every active dataset, most recently updated first.
func (store *Store) ListDatasets() ([]DatasetSummary, error) {
	var summaries []DatasetSummary
	err := store.db.Model(&Dataset{}).
		Select("datasets.id, datasets.name, datasets.program, datasets.term, datasets.updated_at, COUNT(dataset_courses.id) AS course_count").
		Joins("LEFT JOIN dataset_courses ON dataset_courses.dataset_id = datasets.id").
		Where("datasets.is_active = ?", true).
		Group("datasets.id").
		Order("datasets.updated_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return summaries, nil
}

// DeleteDataset soft-deletes a dataset by deactivating it.
func (store *Store) DeleteDataset(id string) error {
	result := store.db.Model(&Dataset{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("delete dataset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeCourse(data string) (schedule.CourseInput, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return schedule.CourseInput{}, err
	}
	var course schedule.CourseInput
	if err := mapstructure.Decode(raw, &course); err != nil {
		return schedule.CourseInput{}, err
	}
	return course, nil
}
