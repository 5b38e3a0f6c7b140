package requests

// NextOfKinPayload mirrors the next-of-kin block on member create/update.
type NextOfKinPayload struct {
	Name         string `json:"name" validate:"required"`
	Surname      string `json:"surname" validate:"required"`
	Relationship string `json:"relationship" validate:"required,oneof=parent spouse child sibling other"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
}

type CreateMemberRequest struct {
	Name          string            `json:"name" validate:"required"`
	Surname       string            `json:"surname" validate:"required"`
	Gender        string            `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth   string            `json:"date_of_birth" validate:"required"`
	Phone         string            `json:"phone" validate:"required"`
	Email         *string           `json:"email,omitempty" validate:"omitempty,email"`
	DateOfEntry   string            `json:"date_of_entry,omitempty"`
	ReasonOfEntry string            `json:"reason_of_entry" validate:"required"`
	Address       string            `json:"address" validate:"required"`
	NextOfKin     NextOfKinPayload  `json:"next_of_kin" validate:"required"`
	MainBranch    string            `json:"main_branch" validate:"required"`
	Position      string            `json:"position,omitempty"`
	Purity        string            `json:"purity,omitempty"`
}

// UpdateMemberRequest carries only the fields being changed; nil means
// leave untouched. A lastAttendance or deceased change triggers status
// recomputation server-side.
type UpdateMemberRequest struct {
	Name           *string           `json:"name,omitempty"`
	Surname        *string           `json:"surname,omitempty"`
	Phone          *string           `json:"phone,omitempty"`
	Email          *string           `json:"email,omitempty" validate:"omitempty,email"`
	Address        *string           `json:"address,omitempty"`
	ReasonOfEntry  *string           `json:"reason_of_entry,omitempty"`
	NextOfKin      *NextOfKinPayload `json:"next_of_kin,omitempty"`
	Position       *string           `json:"position,omitempty"`
	Purity         *string           `json:"purity,omitempty"`
	MainBranch     *string           `json:"main_branch,omitempty"`
	LastAttendance *string           `json:"last_attendance,omitempty"`
	DateOfDeath    *string           `json:"date_of_death,omitempty"`
	CauseOfDeath   *string           `json:"cause_of_death,omitempty"`
	BurialPlace    *string           `json:"burial_place,omitempty"`
}

type CheckInRequest struct {
	MemberID    string `json:"member_id" validate:"required"`
	BranchID    string `json:"branch_id" validate:"required"`
	ServiceDate string `json:"service_date" validate:"required"`
	ServiceTime string `json:"service_time" validate:"required,oneof=morning afternoon evening"`
}

type OpenRAEpisodeRequest struct {
	StartDate string `json:"start_date" validate:"required"`
}

type CloseRAEpisodeRequest struct {
	EndDate       string `json:"end_date" validate:"required"`
	RemovalReason string `json:"removal_reason" validate:"required"`
}

type AutoAssignRequest struct {
	BranchID    string `json:"branch_id" validate:"required"`
	ServiceDate string `json:"service_date" validate:"required"`
	ServiceTime string `json:"service_time" validate:"required,oneof=morning afternoon evening"`
	Day         string `json:"day" validate:"required"`
	ServiceType string `json:"service_type" validate:"required,oneof=full short"`
	// Optional explicit roster; defaults to the branch's available members.
	MemberIDs []string `json:"member_ids,omitempty"`
}
