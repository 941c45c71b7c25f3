package dto

type AppointmentListDTO struct {
	ID          uint     `json:"id"`
	Reference   string   `json:"reference"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Status      string   `json:"status"`
	ClientID    uint     `json:"client_id"`
	ServiceName string   `json:"service_name"`
	Services    []string `json:"services,omitempty"`
	TotalPrice  float64  `json:"total_price"`
}
