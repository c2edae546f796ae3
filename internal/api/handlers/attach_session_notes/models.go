package attach_session_notes

// AttachNotesRequest HTTP request model
type AttachNotesRequest struct {
	NotesRef string `json:"notesRef"`
}
