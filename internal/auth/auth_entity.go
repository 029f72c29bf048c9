package auth

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Claims are the custom claims attached to an identity and copied into every
// session token it is issued.
type Claims map[string]any

const (
	ClaimRole       = "role"
	ClaimDepartment = "department"
)

func (c Claims) String(key string) string {
	v, _ := c[key].(string)
	return v
}

func (c Claims) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Claims) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = Claims{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan claims: unsupported type %T", src)
	}
	out := Claims{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*c = out
	return nil
}

type Identity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	DisplayName  string    `gorm:"type:varchar(255);not null;default:''"`
	Claims       Claims    `gorm:"type:jsonb;not null"`
	Disabled     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
