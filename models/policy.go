package models

// CanModify decides whether actor may update or delete an entity owned by
// ownerID. Admins may modify anything; everyone else only their own entities.
// All ownership checks in the handlers go through this single function.
func CanModify(actor *User, ownerID uint) bool {
	if actor == nil {
		return false
	}
	return actor.Role == RoleAdmin || actor.ID == ownerID
}
