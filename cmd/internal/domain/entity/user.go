package entity

// User is an administrative account of the platform. Credentials live in the
// external identity provider; we only keep the profile and permission bits,
// matched by the token subject.
type User struct {
	ID          int64      `gorm:"primaryKey"`
	SubUUID     string     `gorm:"not null;index"`
	Username    string     `gorm:"not null"`
	Email       string     `gorm:"not null"`
	Permissions Permission `gorm:"not null;type:bigint;default:0"`
	Active      bool       `gorm:"not null;default:true"`
	Suspended   bool       `gorm:"not null;default:false"`
	CreatedAt   int64      `gorm:"not null"`
	UpdatedAt   int64      `gorm:"not null;autoUpdateTime:false"`
}
