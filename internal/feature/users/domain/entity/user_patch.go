package entity

// UserPatch carries the columns changed by a partial profile update. A nil field is left unchanged.
type UserPatch struct {
	Username     *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.PasswordHash == nil
}
