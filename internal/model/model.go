package model

import "time"

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

const (
	TypeSolo = "SOLO"
	TypeTeam = "TEAM"
	TypeBoth = "BOTH"
)

var Categories = []string{"technical", "non-technical", "day1", "day2", "sports"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidParticipationType(t string) bool {
	return t == TypeSolo || t == TypeTeam || t == TypeBoth
}

type Coordinator struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Image string `json:"image"`
}

type Event struct {
	ID           int64         `db:"id" json:"id"`
	Title        string        `db:"title" json:"title"`
	Description  string        `db:"description,omitempty" json:"description,omitempty"`
	Category     string        `db:"category" json:"category"`
	Type         string        `db:"type" json:"type"`
	Fee          int           `db:"fee" json:"fee"`
	ImageColor   string        `db:"image_color,omitempty" json:"image_color,omitempty"`
	Icon         string        `db:"icon,omitempty" json:"icon,omitempty"`
	RuleBook     []string      `db:"rule_book" json:"rule_book"`
	Coordinators []Coordinator `db:"coordinators" json:"coordinators"`
	Day          string        `db:"day,omitempty" json:"day,omitempty"`
}

type Registration struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Year        string    `db:"year" json:"year"`
	Department  string    `db:"department" json:"department"`
	RollNo      string    `db:"roll_no" json:"roll_no"`
	College     string    `db:"college" json:"college"`
	Event       string    `db:"event" json:"event"`
	TeamMembers []string  `db:"team_members" json:"team_members,omitempty"`
	Status      string    `db:"status" json:"status"`
	PaymentID   string    `db:"payment_id" json:"payment_id,omitempty"`
	Amount      int       `db:"amount" json:"amount"`
	PassType    string    `db:"pass_type" json:"pass_type"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}
