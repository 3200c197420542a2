package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a registered member.
type User struct {
	Model         `bson:",inline"`
	Username      string   `json:"username" bson:"username"`
	Email         string   `json:"email" bson:"email"`
	PasswordHash  string   `json:"-" bson:"password_hash"`
	FirstName     string   `json:"firstName" bson:"first_name"`
	LastName      string   `json:"lastName" bson:"last_name"`
	ProfileImage  *string  `json:"profileImage" bson:"profile_image,omitempty"`
	Height        *float64 `json:"height" bson:"height,omitempty"`
	Weight        *float64 `json:"weight" bson:"weight,omitempty"`
	Age           *int     `json:"age" bson:"age,omitempty"`
	Gender        *string  `json:"gender" bson:"gender,omitempty"`
	Location      *string  `json:"location" bson:"location,omitempty"`
	Role          string   `json:"role" bson:"role"`
	ActivityLevel int      `json:"activityLevel" bson:"activity_level"`
	FitnessGoal   string   `json:"fitnessGoal" bson:"fitness_goal"`
}

func (u *User) Field(name string) (any, bool) {
	switch name {
	case "username":
		return u.Username, true
	case "email":
		return u.Email, true
	case "role":
		return u.Role, true
	case "location":
		if u.Location == nil {
			return nil, true
		}
		return *u.Location, true
	}
	return u.modelField(name)
}

// UserSummary is the reduced projection embedded in challenge views.
type UserSummary struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	ProfileImage *string `json:"profileImage"`
	Location     *string `json:"location,omitempty"`
}

// Summary projects u without its location.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfileImage: u.ProfileImage,
	}
}

// PublicProfile projects u including its location.
func (u *User) PublicProfile() UserSummary {
	s := u.Summary()
	s.Location = u.Location
	return s
}

func (u *User) Clone() User {
	out := *u
	out.ProfileImage = clonePtr(u.ProfileImage)
	out.Height = clonePtr(u.Height)
	out.Weight = clonePtr(u.Weight)
	out.Age = clonePtr(u.Age)
	out.Gender = clonePtr(u.Gender)
	out.Location = clonePtr(u.Location)
	return out
}
