package dto

// InviteEmail is the queue payload published by the trip service when a
// participant is invited.
type InviteEmail struct {
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	TripId         string `json:"tripId"`
	Destination    string `json:"destination"`
	ParticipantId  string `json:"participantId"`
}
