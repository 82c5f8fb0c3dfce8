package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (b *Base) GetID() uuid.UUID {
	return b.ID
}

func (b *Base) SetID(id uuid.UUID) {
	b.ID = id
}

func (b *Base) TouchCreate(now time.Time) {
	b.CreatedAt = now
	b.UpdatedAt = now
}

func (b *Base) TouchUpdate(now time.Time) {
	b.UpdatedAt = now
}

// Owned contains the common fields of every patient-owned record. The owner
// is fixed at creation and never changes afterwards. An empty DocumentPath
// means no attachment.
type Owned struct {
	Base
	OwnerID      uuid.UUID `json:"owner_id" db:"owner_id"`
	DocumentPath string    `json:"document_path,omitempty" db:"document_path"`
}

func (o *Owned) GetOwnerID() uuid.UUID {
	return o.OwnerID
}

func (o *Owned) SetOwnerID(id uuid.UUID) {
	o.OwnerID = id
}

func (o *Owned) GetDocumentPath() string {
	return o.DocumentPath
}

func (o *Owned) SetDocumentPath(path string) {
	o.DocumentPath = path
}

// OwnedRecord is implemented by all five record kinds via the embedded
// Owned struct.
type OwnedRecord interface {
	GetID() uuid.UUID
	SetID(uuid.UUID)
	GetOwnerID() uuid.UUID
	SetOwnerID(uuid.UUID)
	GetDocumentPath() string
	SetDocumentPath(string)
	TouchCreate(time.Time)
	TouchUpdate(time.Time)
}
