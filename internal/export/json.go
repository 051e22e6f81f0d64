// Package export renders a user's export payload in the two required formats: a
// structured JSON interchange document and a printable PDF. Both are produced from the
// same services.UserExport, so the field set and chart ordering are identical by
// construction.
package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

// FormatID tags the interchange document so importers can version-check it.
const FormatID = "gurukrpa.user+charts.v1"

// Document is the JSON interchange rendering.
type Document struct {
	User       models.Profile `json:"user"`
	Charts     []models.Chart `json:"charts"`
	ExportedAt time.Time      `json:"exportedAt"`
	Format     string         `json:"format"`
}

func JSONDocument(exp *services.UserExport, now time.Time) Document {
	return Document{
		User:       exp.Profile,
		Charts:     exp.Charts,
		ExportedAt: now.UTC(),
		Format:     FormatID,
	}
}

// Filename builds the attachment name, preferring the email over the raw id.
func Filename(profile models.Profile, id uuid.UUID, ext string) string {
	name := profile.Email
	if name == "" {
		name = id.String()
	}
	return fmt.Sprintf("user-%s-export.%s", name, ext)
}
