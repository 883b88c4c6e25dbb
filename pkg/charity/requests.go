package charity

import (
	"io"

	"github.com/google/uuid"
)

// Request/Response DTOs

// FileUpload carries one incoming multipart file. A nil *FileUpload on an
// update request means "keep the currently stored asset".
type FileUpload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// CreateProductRequest contains parameters for creating a product.
type CreateProductRequest struct {
	Name             string
	Description      string
	ShortDescription string
	Category         string
	Image            *FileUpload
	SecondaryImage   *FileUpload
}

// UpdateProductRequest contains parameters for a partial product update.
// Nil field pointers keep the stored value.
type UpdateProductRequest struct {
	ID               uuid.UUID
	Name             *string
	Description      *string
	ShortDescription *string
	Category         *string
	Image            *FileUpload
	SecondaryImage   *FileUpload
}

// CreateContentPostRequest contains parameters for creating a content post.
type CreateContentPostRequest struct {
	Title            string
	Category         string
	Description      string
	ShortDescription string
	Date             string
	Image            *FileUpload
	Video            *FileUpload
}

// UpdateContentPostRequest contains parameters for a partial post update.
type UpdateContentPostRequest struct {
	ID               uuid.UUID
	Title            *string
	Category         *string
	Description      *string
	ShortDescription *string
	Date             *string
	Image            *FileUpload
	SecondaryImage   *FileUpload
	Video            *FileUpload
}

// MoveResult reports the outcome of a rank move. Moved is false when the
// request was a boundary no-op; Current and Target then carry no records.
type MoveResult struct {
	Moved   bool
	Current *RankedItem
	Target  *RankedItem
}

// RankedItem is the id/rang pair returned from a swap.
type RankedItem struct {
	ID   uuid.UUID `json:"id"`
	Rang int       `json:"rang"`
}

// AddPageDocumentRequest contains parameters for attaching a document to a page.
type AddPageDocumentRequest struct {
	PageName string
	Title    string
	File     *FileUpload
}

// CreateContactMessageRequest contains a contact-form submission.
type CreateContactMessageRequest struct {
	Name    string
	Email   string
	Message string
}

// CreateVolunteerApplicationRequest contains a volunteer-form submission.
type CreateVolunteerApplicationRequest struct {
	FullName           string
	AgeCategory        string
	Gender             string
	Phone              string
	Email              string
	EducationLevel     string
	PreviousExperience string
	OrganizationName   string
	InterestAreas      string
}
