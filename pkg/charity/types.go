package charity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the domain type for user roles.
type Role string

// Role constants (typed).
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// MoveDirection selects the neighbor a ranked item is swapped with.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// Product represents a charity project shown on the public site.
//
// Rang is a display-order integer: unique among products, dense but not
// necessarily contiguous (deletes leave gaps). It is mutated only by the
// swap operation.
type Product struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ShortDescription  string    `json:"shortDescription,omitempty"`
	Category          string    `json:"category"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	SecondaryImageURL string    `json:"secondaryImageUrl,omitempty"`
	Rang              int       `json:"rang"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ContentPost represents a news/activity post. Rang semantics match Product;
// the public listing shows posts in descending rang (newest first).
type ContentPost struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Category          string    `json:"category,omitempty"`
	Description       string    `json:"description,omitempty"`
	ShortDescription  string    `json:"shortDescription,omitempty"`
	Date              string    `json:"date,omitempty"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	SecondaryImageURL string    `json:"secondaryImageUrl,omitempty"`
	VideoURL          string    `json:"videoUrl,omitempty"`
	Rang              int       `json:"rang"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CarouselImage is a home-page carousel slide. Order carries the same
// semantics as Rang under a different name.
type CarouselImage struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	ObjectKey string    `json:"-"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageContent is the singleton content record for a named static page
// (about, haykal, raports, ...). It holds an inline rich-text blob and/or
// owns a collection of uploaded documents.
type PageContent struct {
	ID        uuid.UUID       `json:"id"`
	PageName  string          `json:"pageName"`
	Content   string          `json:"content,omitempty"`
	Documents []*PageDocument `json:"documents,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PageDocument is a titled file reference belonging to exactly one PageContent.
type PageDocument struct {
	ID            uuid.UUID `json:"id"`
	PageContentID uuid.UUID `json:"pageContentId"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	ObjectKey     string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// VolunteerApplication is a public volunteer-form submission.
type VolunteerApplication struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"fullName"`
	AgeCategory        string    `json:"ageCategory"`
	Gender             string    `json:"gender"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	EducationLevel     string    `json:"educationLevel"`
	PreviousExperience string    `json:"previousExperience,omitempty"`
	OrganizationName   string    `json:"organizationName,omitempty"`
	InterestAreas      string    `json:"interestAreas"`
	CreatedAt          time.Time `json:"created_at"`
}

// User is a back-office account. PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductFilters defines filtering options for listing products.
type ProductFilters struct {
	Category *string
}

// ContentPostFilters defines filtering options for listing content posts.
type ContentPostFilters struct {
	Limit *int
}
