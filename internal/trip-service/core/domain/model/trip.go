package model

import "time"

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

type Trip struct {
	TripId      string
	Destination string
	CreatorId   string
	CreatedAt   time.Time
}

type UserInfo struct {
	UserId string
	Name   string
	Email  string
}

type Participant struct {
	ParticipantId string
	TripId        string
	UserId        string
	Status        string
	User          UserInfo
}
