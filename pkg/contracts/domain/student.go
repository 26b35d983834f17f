package domain

import "time"

// StudentStatus is the normalized account state of a roster entry.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
	StudentOther    StudentStatus = "other"
)

// StudentRecord is one roster entry.
type StudentRecord struct {
	Name         string        `json:"name" validate:"required"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	RegisteredAt *time.Time    `json:"registered_at,omitempty"`
	StatusLabel  string        `json:"status_label"`
	Status       StudentStatus `json:"status"`
	Gender       string        `json:"gender,omitempty"`
	BirthYear    int           `json:"birth_year,omitempty"`
	Province     string        `json:"province,omitempty"`
}

// ClassifyStudent maps the exported roster status to a status.
func ClassifyStudent(label string) StudentStatus {
	switch label {
	case "Hoạt động":
		return StudentActive
	case "Không hoạt động", "Ngừng hoạt động":
		return StudentInactive
	default:
		return StudentOther
	}
}
