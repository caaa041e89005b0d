package types

// Entity is a record keyed by a numeric ID.
type Entity interface {
	EntityID() int64
}

func (g Group) EntityID() int64     { return g.ID }
func (u User) EntityID() int64      { return u.ID }
func (a Account) EntityID() int64   { return a.ID }
func (k APIKey) EntityID() int64    { return k.ID }
func (l SystemLog) EntityID() int64 { return l.ID }

// EntityKey returns the key of a usage log. Log IDs are strings.
func (l Log) EntityKey() string { return l.ID }
