package models

import (
	"encoding/json"
	"fmt"
)

// Owner identifies who a row belongs to: a persisted user or the virtual
// default dataset that is synthesized for anonymous callers.
type Owner struct {
	id      uint
	virtual bool
}

// UserOwner returns the owner for a persisted user row.
func UserOwner(id uint) Owner { return Owner{id: id} }

// VirtualOwner marks records that were never written to storage.
func VirtualOwner() Owner { return Owner{virtual: true} }

// UserID returns the owning user id; ok is false for virtual records.
func (o Owner) UserID() (uint, bool) {
	if o.virtual {
		return 0, false
	}
	return o.id, true
}

func (o Owner) IsVirtual() bool { return o.virtual }

func (o Owner) String() string {
	if o.virtual {
		return "virtual"
	}
	return fmt.Sprintf("user:%d", o.id)
}

// MarshalJSON keeps the wire shape clients already consume: virtual rows
// render as user_id 0.
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.virtual {
		return []byte("0"), nil
	}
	return json.Marshal(o.id)
}
