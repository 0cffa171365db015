package entity

type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Agent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BranchID string `json:"branch_id"`
	Email    string `json:"email,omitempty"`
}
