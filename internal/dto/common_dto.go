package dto

// ListParams carries offset pagination for collection endpoints.
type ListParams struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0,max=100"`
}

// Normalize applies the default page size when limit is absent.
func (p *ListParams) Normalize() {
	if p.Limit == 0 {
		p.Limit = 100
	}
}
