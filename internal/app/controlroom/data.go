package controlroom

import "github.com/railflow/railflow-portal/internal/domain"

// The control room works on a fixed, simulated data set. Nothing here is ever modified.

func dashboardStats() []domain.StatTile {
	return []domain.StatTile{
		{Title: "Active Trains", Value: "156", Trend: "+12%", Icon: "train"},
		{Title: "On Time", Value: "89%", Trend: "+2%", Icon: "clock"},
		{Title: "Avg Delay", Value: "8 min", Trend: "-3min", Icon: "trend"},
		{Title: "Alerts", Value: "3", Trend: "-2", Icon: "alert"},
	}
}

func dashboardTrains() []domain.Train {
	return []domain.Train{
		{
			Id:       "12345",
			Name:     "Rajdhani Express",
			Status:   domain.TrainStatusOnTime,
			Delay:    0,
			Route:    "NDLS → CSTM",
			Priority: domain.PriorityHigh,
		},
		{
			Id:       "22456",
			Name:     "Shatabdi Express",
			Status:   domain.TrainStatusDelayed,
			Delay:    15,
			Route:    "NDLS → BPL",
			Priority: domain.PriorityHigh,
		},
		{
			Id:       "13287",
			Name:     "Passenger",
			Status:   domain.TrainStatusRunning,
			Delay:    5,
			Route:    "AGC → JHS",
			Priority: domain.PriorityNormal,
		},
		{
			Id:       "16032",
			Name:     "Andaman Express",
			Status:   domain.TrainStatusHalted,
			Delay:    45,
			Route:    "MMC → CSTM",
			Priority: domain.PriorityNormal,
		},
	}
}

func trackedTrains() []domain.TrackedTrain {
	return []domain.TrackedTrain{
		{
			Train: domain.Train{
				Id:       "T001",
				Name:     "Express Mumbai-Delhi",
				Status:   domain.TrainStatusRunning,
				Delay:    0,
				Route:    "Mumbai Central → New Delhi",
				Priority: domain.PriorityHigh,
			},
			CurrentLocation:  "Kota Junction",
			NextStation:      "Sawai Madhopur",
			EstimatedArrival: "14:30",
			Coordinates:      domain.Coordinates{Lat: 25.2138, Lng: 75.8648},
			RouteStations: []string{
				"Mumbai Central", "Vadodara", "Ratlam", "Kota Junction", "Sawai Madhopur", "Jaipur", "Alwar",
				"New Delhi",
			},
		},
		{
			Train: domain.Train{
				Id:       "T002",
				Name:     "Rajdhani Express",
				Status:   domain.TrainStatusDelayed,
				Delay:    15,
				Route:    "New Delhi → Mumbai Central",
				Priority: domain.PriorityHigh,
			},
			CurrentLocation:  "Bharatpur",
			NextStation:      "Mathura",
			EstimatedArrival: "16:45",
			Coordinates:      domain.Coordinates{Lat: 27.2152, Lng: 77.4909},
			RouteStations: []string{
				"New Delhi", "Gurgaon", "Alwar", "Jaipur", "Ajmer", "Abu Road", "Vadodara", "Mumbai Central",
			},
		},
		{
			Train: domain.Train{
				Id:       "T003",
				Name:     "Chennai Express",
				Status:   domain.TrainStatusRunning,
				Delay:    5,
				Route:    "Chennai → Bangalore",
				Priority: domain.PriorityMedium,
			},
			CurrentLocation:  "Katpadi",
			NextStation:      "Jolarpettai",
			EstimatedArrival: "18:20",
			Coordinates:      domain.Coordinates{Lat: 12.9698, Lng: 79.1325},
			RouteStations: []string{
				"Chennai Central", "Arakkonam", "Katpadi", "Jolarpettai", "Salem", "Erode", "Tirupur", "Bangalore",
			},
		},
	}
}

func analytics() domain.Analytics {
	return domain.Analytics{
		Metrics: []domain.Metric{
			{Label: "On Time Performance", Value: 89, Unit: "%", Tone: "green"},
			{Label: "Average Delay", Value: 8, Unit: "min", Tone: "yellow"},
			{Label: "Route Efficiency", Value: 94, Unit: "%", Tone: "blue"},
			{Label: "System Load", Value: 67, Unit: "%", Tone: "purple"},
		},
		Weekly: []domain.DailyPerformance{
			{Day: "Mon", OnTimeRate: 92, DelayMinutes: 8, OnTimeTrains: 143, DelayedTrains: 12},
			{Day: "Tue", OnTimeRate: 95, DelayMinutes: 5, OnTimeTrains: 147, DelayedTrains: 8},
			{Day: "Wed", OnTimeRate: 88, DelayMinutes: 12, OnTimeTrains: 140, DelayedTrains: 15},
			{Day: "Thu", OnTimeRate: 96, DelayMinutes: 4, OnTimeTrains: 149, DelayedTrains: 6},
			{Day: "Fri", OnTimeRate: 85, DelayMinutes: 15, OnTimeTrains: 137, DelayedTrains: 18},
			{Day: "Sat", OnTimeRate: 82, DelayMinutes: 18, OnTimeTrains: 133, DelayedTrains: 22},
			{Day: "Sun", OnTimeRate: 90, DelayMinutes: 10, OnTimeTrains: 141, DelayedTrains: 14},
		},
		Throughput: []domain.HourlyThroughput{
			{Hour: "00:00", Trains: 12},
			{Hour: "06:00", Trains: 45},
			{Hour: "12:00", Trains: 89},
			{Hour: "18:00", Trains: 67},
			{Hour: "23:00", Trains: 23},
		},
		Zones: []domain.ZoneShare{
			{Name: "Northern", Percentage: 35, Trains: 156},
			{Name: "Southern", Percentage: 28, Trains: 124},
			{Name: "Western", Percentage: 22, Trains: 98},
			{Name: "Eastern", Percentage: 15, Trains: 67},
		},
	}
}
