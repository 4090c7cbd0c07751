package models

import (
	"time"
)

// Default values applied when the intake document leaves a field empty.
const (
	DefaultStatus   = "STABLE"
	DefaultSeverity = "Mild"
)

// Statuses offered by the admission form. The column is free text and
// these are not enforced.
const (
	StatusStable     = "STABLE"
	StatusCritical   = "CRITICAL"
	StatusUrgent     = "URGENT"
	StatusGood       = "GOOD"
	StatusRecovering = "RECOVERING"
)

// Severities offered by the admission form, also not enforced.
const (
	SeverityMild     = "Mild"
	SeverityModerate = "Moderate"
	SeveritySevere   = "Severe"
	SeverityCritical = "Critical"
)

// Patient is a row of the patient table. PatientID is generated by the
// database on insert.
type Patient struct {
	PatientID     uint      `gorm:"column:patient_id;primaryKey;autoIncrement" json:"patient_id"`
	Name          string    `gorm:"column:name;size:255;not null" json:"name"`
	BirthDate     time.Time `gorm:"column:birth_date;type:date" json:"birth_date"`
	AdmissionDate time.Time `gorm:"column:admission_date;type:date" json:"admission_date"`
	Status        string    `gorm:"column:status;size:50" json:"status"`
	Notes         string    `gorm:"column:notes;type:text" json:"notes"`

	// Relations
	Diseases []Disease `gorm:"foreignKey:PatientID;references:PatientID" json:"diseases,omitempty"`
	Symptoms []Symptom `gorm:"foreignKey:PatientID;references:PatientID" json:"symptoms,omitempty"`
}

// TableName overrides gorm's pluralised default.
func (Patient) TableName() string {
	return "patient"
}

// Disease is a row of the disease table.
type Disease struct {
	PatientID   uint   `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DiseaseName string `gorm:"column:disease_name;size:255" json:"disease_name"`
}

func (Disease) TableName() string {
	return "disease"
}

// Symptom is a row of the symptoms table.
type Symptom struct {
	PatientID   uint   `gorm:"column:patient_id;not null;index" json:"patient_id"`
	SymptomName string `gorm:"column:symptom_name;size:255" json:"symptom_name"`
	Severity    string `gorm:"column:severity;size:50" json:"severity"`
}

func (Symptom) TableName() string {
	return "symptoms"
}
