package common

type Pagination struct {
	Total int64 `json:"total"`
}

// SearchResponse is the envelope for list replies such as timesheet
// searches and pending review worklists. The pagination total is the
// unfiltered row count, not the length of the returned page.
type SearchResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func NewSearchResponse(data interface{}, total int64) *SearchResponse {
	return &SearchResponse{
		Data: data,
		Pagination: Pagination{
			Total: total,
		},
	}
}
