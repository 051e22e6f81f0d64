package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleExport() *services.UserExport {
	id := uuid.New()
	full := "Test User"
	dob := "1990-05-15"
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &services.UserExport{
		Profile: models.Profile{ID: id, Email: "user@example.com", FullName: &full},
		Charts: []models.Chart{
			{
				ID:               uuid.New(),
				UserID:           id,
				FullName:         "Chart One",
				Relation:         "Self",
				SelectedServices: datatypes.NewJSONSlice([]string{"Astrology Consultation"}),
				DateOfBirth:      &dob,
				PlaceOfBirth:     "Chennai, India",
				CreatedAt:        now,
			},
			{
				ID:        uuid.New(),
				UserID:    id,
				FullName:  "Chart Two",
				Relation:  "Spouse",
				CreatedAt: now.Add(time.Minute),
			},
		},
	}
}

func TestJSONDocument(t *testing.T) {
	exp := sampleExport()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

	doc := JSONDocument(exp, now)
	assert.Equal(t, FormatID, doc.Format)
	assert.Equal(t, time.UTC, doc.ExportedAt.Location(), "timestamps are normalized to UTC")
	assert.Equal(t, exp.Profile.Email, doc.User.Email)
	require.Len(t, doc.Charts, 2)
	assert.Equal(t, "Chart One", doc.Charts[0].FullName)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "gurukrpa.user+charts.v1", decoded["format"])
	assert.Contains(t, decoded, "user")
	assert.Contains(t, decoded, "charts")
	assert.Contains(t, decoded, "exportedAt")
}

func TestFilename(t *testing.T) {
	id := uuid.New()

	withEmail := Filename(models.Profile{Email: "user@example.com"}, id, "json")
	assert.Equal(t, "user-user@example.com-export.json", withEmail)

	withoutEmail := Filename(models.Profile{}, id, "pdf")
	assert.Equal(t, "user-"+id.String()+"-export.pdf", withoutEmail)
}

func TestPDF(t *testing.T) {
	raw, err := PDF(sampleExport(), time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")), "output must start with the PDF magic")
	assert.Greater(t, len(raw), 1000)
}

func TestPDFHandlesEmptyCharts(t *testing.T) {
	exp := sampleExport()
	exp.Charts = nil

	raw, err := PDF(exp, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}
