package messagebrokerdto

// InviteEmail is the message published for every invited participant; the
// email worker consumes it and performs the actual delivery.
type InviteEmail struct {
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	TripId         string `json:"tripId"`
	Destination    string `json:"destination"`
	ParticipantId  string `json:"participantId"`
}
