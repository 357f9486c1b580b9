package orderitem

// QueryOrderItemsModel represents filter parameters for querying order items.
type QueryOrderItemsModel struct {
	Ids         []string `json:"ids,omitempty"`
	OrderIds    []string `json:"orderIds,omitempty"`
	ProductIds  []string `json:"productIds,omitempty"`
	CustomerIds []string `json:"customerIds,omitempty"`
	Page        int      `json:"page,omitempty"`
	PageSize    int      `json:"pageSize,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}
