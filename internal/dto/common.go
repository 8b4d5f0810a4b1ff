package dto

// PaginationParams defines page/size query parameters shared by list endpoints.
type PaginationParams struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=20"`
}
