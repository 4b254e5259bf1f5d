package model

import "time"

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// LocationSample is one immutable position report. "Current location" of a
// participant is the sample with the greatest CapturedAt.
type LocationSample struct {
	SampleId      string
	ParticipantId string
	Latitude      float64
	Longitude     float64
	Accuracy      *float64
	Heading       *float64
	Speed         *float64
	CapturedAt    time.Time
}

type Participant struct {
	ParticipantId string
	TripId        string
	UserId        string
	Status        string
	UserName      string
	UserEmail     string
}

type Trip struct {
	TripId      string
	Destination string
	CreatorId   string
}
