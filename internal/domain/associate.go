package domain

import (
	"context"
	"io"
	"time"
)

// AssociateRegistration holds the optional company registration details
// collected with a membership request.
type AssociateRegistration struct {
	RazaoSocial      string `bson:"razaoSocial,omitempty" json:"razao_social,omitempty"`
	CNPJ             string `bson:"cnpj,omitempty" json:"cnpj,omitempty"`
	Street           string `bson:"street,omitempty" json:"street,omitempty"`
	Number           string `bson:"number,omitempty" json:"number,omitempty"`
	District         string `bson:"district,omitempty" json:"district,omitempty"`
	City             string `bson:"city,omitempty" json:"city,omitempty"`
	State            string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode          string `bson:"zipCode,omitempty" json:"zip_code,omitempty"`
	ResponsibleName  string `bson:"responsibleName,omitempty" json:"responsible_name,omitempty"`
	ResponsiblePhone string `bson:"responsiblePhone,omitempty" json:"responsible_phone,omitempty"`
	ResponsibleEmail string `bson:"responsibleEmail,omitempty" json:"responsible_email,omitempty"`
	EmployeeCount    int    `bson:"employeeCount,omitempty" json:"employee_count,omitempty"`
}

// Associate is a member business of the bureau. The document itself is the
// published record: only approved associates appear in the public directory.
type Associate struct {
	ID           string                 `bson:"id" json:"id"`
	Name         string                 `bson:"name" json:"name"`
	Category     string                 `bson:"category" json:"category"`
	LogoURL      string                 `bson:"logoUrl,omitempty" json:"logo_url,omitempty"`
	Instagram    string                 `bson:"instagram,omitempty" json:"instagram,omitempty"`
	SiteURL      string                 `bson:"siteUrl,omitempty" json:"site_url,omitempty"`
	Registration *AssociateRegistration `bson:"registration,omitempty" json:"registration,omitempty"`
	Status       ReviewStatus           `bson:"status" json:"status"`
	CreatedAt    time.Time              `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time              `bson:"updatedAt" json:"updated_at"`
}

// AssociateRepository defines the interface for associate storage.
type AssociateRepository interface {
	Create(ctx context.Context, a *Associate) error
	GetByID(ctx context.Context, id string) (*Associate, error)
	List(ctx context.Context) ([]*Associate, error)
	UpdateStatus(ctx context.Context, id string, status ReviewStatus, updatedAt time.Time) (*Associate, error)
	SetLogoURL(ctx context.Context, id, logoURL string, updatedAt time.Time) (*Associate, error)
	Delete(ctx context.Context, id string) error
}

// AssociateService defines submission, review, and asset operations for associates.
//
// Unlike event requests, associate review is correctable: approved and
// rejected records may be flipped to the other terminal state.
type AssociateService interface {
	Submit(ctx context.Context, a *Associate) error
	GetByID(ctx context.Context, id string) (*Associate, error)
	List(ctx context.Context) ([]*Associate, error)
	Approve(ctx context.Context, id string) (*Associate, error)
	Reject(ctx context.Context, id string) (*Associate, error)
	// Delete removes the associate document after a best-effort delete of
	// its stored logo object.
	Delete(ctx context.Context, id string) error
	AttachLogo(ctx context.Context, id string, upload LogoUpload) (*Associate, error)
}

// MaxLogoSize is the largest accepted logo upload.
const MaxLogoSize = 5 << 20

// LogoUpload is an associate logo image to store.
type LogoUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}
