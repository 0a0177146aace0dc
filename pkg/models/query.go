package models

// QueryResult is the paginated envelope used by list endpoints.
type QueryResult[T any] struct {
	Items            []T   `json:"Items"`
	TotalRecordCount int64 `json:"TotalRecordCount"`
	StartIndex       int64 `json:"StartIndex"`
}
