package attach_meeting_link

// AttachMeetingLinkRequest HTTP request model
type AttachMeetingLinkRequest struct {
	MeetingLink string `json:"meetingLink"`
}
