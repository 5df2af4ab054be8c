package model

type Activity struct {
	ID       int64  `json:"id,string" db:"id"`
	Name     string `json:"name" db:"name"`
	ParentID *int64 `json:"parent_id,string,omitempty" db:"parent_id"`
}

// ActivityUpdate carries the fields to change on an activity. Nil fields are left as is.
// ClearParent turns the activity into a root and wins over ParentID.
type ActivityUpdate struct {
	Name        *string
	ParentID    *int64
	ClearParent bool
}

func (u ActivityUpdate) Empty() bool {
	return u.Name == nil && u.ParentID == nil && !u.ClearParent
}

// Reparents reports whether the update changes the parent link.
func (u ActivityUpdate) Reparents() bool {
	return u.ParentID != nil || u.ClearParent
}
