package resource

type listResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []any   `json:"results"`
}

type bulkActionRequest struct {
	IDs []uint `json:"ids"`
}

type actionResponse struct {
	Status string `json:"status"`
	Action string `json:"action"`
	Count  int64  `json:"count"`
}
