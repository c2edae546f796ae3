package update_booking_status

// UpdateStatusRequest HTTP request model
// Оба поля опциональны, но хотя бы одно должно быть указано
type UpdateStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}
