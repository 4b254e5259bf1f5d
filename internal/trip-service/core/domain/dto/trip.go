package dto

import "time"

type CreateTripRequest struct {
	Destination  string   `json:"destination" validate:"required,min=1,max=255"`
	FriendEmails []string `json:"friendEmails" validate:"dive,omitempty,email"`
}

type UpdateTripRequest struct {
	Destination string `json:"destination" validate:"required,min=1,max=255"`
}

type UserDto struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ParticipantDto struct {
	Id     string  `json:"id"`
	Status string  `json:"status"`
	User   UserDto `json:"user"`
}

type TripStats struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type ParticipantsByStatus struct {
	Accepted []ParticipantDto `json:"accepted"`
	Pending  []ParticipantDto `json:"pending"`
	Rejected []ParticipantDto `json:"rejected"`
}

type TripDto struct {
	Id                   string               `json:"id"`
	Destination          string               `json:"destination"`
	CreatedAt            time.Time            `json:"createdAt"`
	Creator              UserDto              `json:"creator"`
	Participants         []ParticipantDto     `json:"participants"`
	Stats                TripStats            `json:"stats"`
	ParticipantsByStatus ParticipantsByStatus `json:"participantsByStatus"`
}

type TripSummaryDto struct {
	Id          string    `json:"id"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
}

type InvitationActionRequest struct {
	Action string `json:"action" validate:"required,oneof=ACCEPT REJECT"`
}

type InvitationDto struct {
	Id          string  `json:"id"`
	Status      string  `json:"status"`
	TripId      string  `json:"tripId"`
	Destination string  `json:"destination"`
	Creator     UserDto `json:"creator"`
	User        UserDto `json:"user"`
}

type GeocodeResponse struct {
	Success bool    `json:"success"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type PointDto struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RouteDto struct {
	Path         []PointDto `json:"path"`
	DistanceText string     `json:"distanceText"`
	DurationText string     `json:"durationText"`
}

type RouteResponse struct {
	Success bool     `json:"success"`
	Route   RouteDto `json:"route"`
	Error   string   `json:"error,omitempty"`
}
