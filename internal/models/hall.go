package models

// Hall is a venue owned by the signed-in user.
type Hall struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location,omitempty"`
	Capacity int     `json:"capacity,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
}

// RevenueSummary aggregates an owner's earnings across completed bookings.
type RevenueSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	CompletedBookings int     `json:"completedBookings"`
}

// Settings holds the locally persisted client preferences.
type Settings struct {
	APIBaseURL   string `json:"api_base_url"`
	SelectedHall string `json:"selected_hall"`
	Theme        string `json:"theme"`
	PageSize     int    `json:"page_size"`
}
