package dto

import "time"

// RecordLocationRequest carries one position report. Latitude and longitude
// are pointers so an absent field can be told apart from a legitimate zero
// coordinate.
type RecordLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Accuracy  *float64 `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Heading   *float64 `json:"heading,omitempty" validate:"omitempty,gte=0,lt=360"`
	Speed     *float64 `json:"speed,omitempty" validate:"omitempty,gte=0"`
}

type LocationDto struct {
	Id            string    `json:"id"`
	ParticipantId string    `json:"participantId"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Accuracy      *float64  `json:"accuracy,omitempty"`
	Heading       *float64  `json:"heading,omitempty"`
	Speed         *float64  `json:"speed,omitempty"`
	CapturedAt    time.Time `json:"capturedAt"`
}

type RecordLocationResponse struct {
	Success  bool        `json:"success"`
	Location LocationDto `json:"location"`
}

type ParticipantLocationDto struct {
	ParticipantId  string       `json:"participantId"`
	UserId         string       `json:"userId"`
	UserName       string       `json:"userName"`
	UserEmail      string       `json:"userEmail"`
	LatestLocation *LocationDto `json:"latestLocation"`
}

type TripLocationsDto struct {
	TripId               string                   `json:"tripId"`
	Destination          string                   `json:"destination"`
	ParticipantLocations []ParticipantLocationDto `json:"participantLocations"`
}

type ParticipantDto struct {
	ParticipantId  string       `json:"participantId"`
	TripId         string       `json:"tripId"`
	UserId         string       `json:"userId"`
	Status         string       `json:"status"`
	LatestLocation *LocationDto `json:"latestLocation"`
}
