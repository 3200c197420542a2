package domain

import "time"

// Model carries the identity and audit fields shared by every stored record.
type Model struct {
	ID        int64     `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

func (m *Model) EntityID() int64 { return m.ID }

func (m *Model) SetEntityID(id int64) { m.ID = id }

// Touch stamps the audit fields. CreatedAt is only set on creation.
func (m *Model) Touch(now time.Time, created bool) {
	if created {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func (m *Model) modelField(name string) (any, bool) {
	switch name {
	case "_id":
		return m.ID, true
	case "created_at":
		return m.CreatedAt, true
	case "updated_at":
		return m.UpdatedAt, true
	}
	return nil, false
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
