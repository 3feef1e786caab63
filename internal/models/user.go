// internal/models/user.go
package models

import "time"

// Role is the marketplace role a user account was registered with.
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleStudent   Role = "student"
	RoleEmployer  Role = "employer"
	RoleMentor    Role = "mentor"
	RoleAdmin     Role = "admin"
)

// Scorable reports whether profile scoring applies to the role.
func (r Role) Scorable() bool {
	return r == RoleJobSeeker || r == RoleStudent
}

// UserRecord is the user document as read by the scoring engine. The engine never writes it.
type UserRecord struct {
	ID                  string      `json:"id" db:"id"`
	Role                Role        `json:"role" db:"role"`
	FirstName           string      `json:"firstName" db:"first_name"`
	LastName            string      `json:"lastName" db:"last_name"`
	Email               string      `json:"email" db:"email"`
	EmailVerified       bool        `json:"emailVerified" db:"email_verified"`
	ContactNumber       string      `json:"contactNumber,omitempty" db:"contact_number"`
	Address             string      `json:"address,omitempty" db:"address"`
	Birthdate           *time.Time  `json:"birthdate,omitempty" db:"birthdate"`
	CreatedAt           time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time   `json:"updatedAt" db:"updated_at"`
	Profile             Profile     `json:"profile" db:"profile"`
	Resume              *Resume     `json:"resume,omitempty" db:"resume"`
	BookmarkedResources []string    `json:"bookmarkedResources,omitempty"`
	CareerPath          *CareerPath `json:"careerPath,omitempty"`
}

type Profile struct {
	Bio            string   `json:"bio,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Location       string   `json:"location,omitempty"`
	Availability   string   `json:"availability,omitempty"`
	Remote         *bool    `json:"remote,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	Education      string   `json:"education,omitempty"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
}

// Resume describes the uploaded resume document. A resume without a CloudinaryURL
// is treated as absent.
type Resume struct {
	CloudinaryURL string `json:"cloudinaryUrl"`
	FileSize      int64  `json:"fileSize"`
	FileType      string `json:"fileType"`
	OriginalName  string `json:"originalName"`
}

type CareerPath struct {
	Title string `json:"title"`
}

// HasResume reports whether an uploaded resume is attached.
func (u *UserRecord) HasResume() bool {
	return u.Resume != nil && u.Resume.CloudinaryURL != ""
}
