// Package models defines the entities of the warehouse simulation:
// games, teams, users, the activity catalog, and the per-period
// accounting records (inputs, team activities, penalties).
package models

import "time"

// Game owns a set of teams and the shared clock driving them.
// CurrentDay starts at 1 and moves in whole periods.
type Game struct {
	ID         int64
	CurrentDay int
	IsActive   bool
	CreatedAt  time.Time
}

// Team belongs to at most one game at a time.
type Team struct {
	ID          int64
	DisplayName string
	IsActive    bool
	GameID      *int64 // nil until assigned
	CreatedAt   time.Time
}

// User is a team member. Managers and cashiers may queue activities
// and request credit; plain players only observe.
type User struct {
	ID            int64
	Username      string
	DisplayName   string
	Email         string
	FacultyNumber string
	PasswordHash  string
	IsAdmin       bool
	IsManager     bool
	IsCashier     bool
	TeamID        *int64
	CreatedAt     time.Time
}

// Activity is immutable catalog reference data. ID is a stable short
// code ("A".."L"). Prerequisites live in a separate relation.
type Activity struct {
	ID         string
	Title      string
	Cost       int
	DaysNeeded int
}

// Input is a team's accounting record for one period, keyed by
// (game, team, day the period becomes active). Monetary fields are
// float64 so fractional interest survives until display.
type Input struct {
	GameID       int64
	TeamID       int64
	ActiveAtDay  int
	CreditTaken  float64 // cumulative credit at period start
	CreditToTake float64 // requested, takes effect next period
	MoneyAtStart float64
	MoneyAtEnd   float64
	InterestCost float64
	RentCost     float64
	PenaltyCost  float64
}

// TeamActivity is one team's attempt at one catalog activity within
// one game. InputDay anchors it to the Input whose period queued it.
// StartedOnDay and FinishedOnDay hold the sentinel day until the
// activity actually starts; use ProgressAt instead of comparing them.
type TeamActivity struct {
	GameID         int64
	TeamID         int64
	ActivityID     string
	InputDay       int
	RequestedOnDay int // day first ever requested
	InitiatedOnDay int // day most recently (re)initiated
	StartedOnDay   int
	FinishedOnDay  int
}

// Penalty is a fixed fine charged against an Input for failing to
// start an activity on time.
type Penalty struct {
	ID         int64
	GameID     int64
	TeamID     int64
	InputDay   int
	ActivityID string
	Amount     float64
}
