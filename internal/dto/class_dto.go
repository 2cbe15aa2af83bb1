package dto

type CreateClassInput struct {
	Name            string  `json:"name" binding:"required"`
	StudyingProgram string  `json:"studying_program" binding:"required"`
	Year            int     `json:"year" binding:"required"`
	Capacity        *int    `json:"capacity"`
	Description     *string `json:"description"`
}

type UpdateClassInput struct {
	Name            *string `json:"name"`
	StudyingProgram *string `json:"studying_program"`
	Year            *int    `json:"year"`
	Capacity        *int    `json:"capacity"`
	Description     *string `json:"description"`
	IsActive        *bool   `json:"is_active"`
}

type AddClassMemberInput struct {
	IsProfessor bool `json:"is_professor"`
}
