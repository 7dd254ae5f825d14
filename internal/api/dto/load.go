package dto

type PostLoadsRequest struct {
	Loads []Load `json:"loads"`
}

type PostLoadsResponse struct {
	SavedIDs []string `json:"savedIds"`
}

type RemoveLoadsRequest struct {
	IDs []string `json:"ids"`
}

type RemoveLoadsResponse struct {
	Removed    []string `json:"removed"`
	MissingIDs []string `json:"missingIds,omitempty"`
}

type ListLoadsResponse struct {
	Loads []Load `json:"loads"`
}

type ItineraryRequest struct {
	SearchCriteria SearchCriteria `json:"searchCriteria"`
	// Loads in the order they will be ridden.
	Loads []Load `json:"loads"`
}

type ItineraryStop struct {
	LoadID             string `json:"loadId"`
	Pickup             bool   `json:"pickup"`
	ArrivalTimeMinutes int    `json:"arrivalTimeMinutes"`
	LoadOnVehicle      int    `json:"loadOnVehicle"`
}

type ItineraryResponse struct {
	SolutionFound         bool            `json:"solutionFound"`
	Message               string          `json:"message,omitempty"`
	TotalRouteTimeMinutes int             `json:"totalRouteTimeMinutes"`
	Stops                 []ItineraryStop `json:"stops"`
}
