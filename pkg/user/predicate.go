package user

import "fmt"

// Lookup attributes understood by FindBy.
const (
	AttrID         = "id"
	AttrEmail      = "email"
	AttrSessionID  = "session_id"
	AttrResetToken = "reset_token"
)

// Predicate selects a single account by one attribute.
type Predicate struct {
	Attr  string
	Value string
}

func ByID(id string) Predicate            { return Predicate{Attr: AttrID, Value: id} }
func ByEmail(email string) Predicate      { return Predicate{Attr: AttrEmail, Value: NormalizeEmail(email)} }
func BySessionID(id string) Predicate     { return Predicate{Attr: AttrSessionID, Value: id} }
func ByResetToken(token string) Predicate { return Predicate{Attr: AttrResetToken, Value: token} }

// Validate rejects unknown attributes and empty values.
func (p Predicate) Validate() error {
	switch p.Attr {
	case AttrID, AttrEmail, AttrSessionID, AttrResetToken:
	default:
		return fmt.Errorf("%w: unknown attribute %q", ErrInvalidPredicate, p.Attr)
	}
	if p.Value == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidPredicate, p.Attr)
	}
	return nil
}

// Match reports whether u satisfies p.
func (p Predicate) Match(u *User) bool {
	switch p.Attr {
	case AttrID:
		return u.ID == p.Value
	case AttrEmail:
		return u.Email == NormalizeEmail(p.Value)
	case AttrSessionID:
		return u.SessionID != nil && *u.SessionID == p.Value
	case AttrResetToken:
		return u.ResetToken != nil && *u.ResetToken == p.Value
	}
	return false
}
