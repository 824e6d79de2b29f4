package artist

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/gearsh/gearsh-api/internal/db"
	"github.com/gearsh/gearsh-api/internal/domain/catalog/profile"
	"github.com/gearsh/gearsh-api/internal/logger"
)

func shapeProfile(ctx context.Context, row db.Row) profile.Profile {
	p := profile.Profile{
		ID:          row.String("artist_id"),
		UserID:      row.String("user_id"),
		Name:        row.String("name"),
		Image:       row.NullString("image"),
		Bio:         row.NullString("bio"),
		Location:    row.NullString("location"),
		Verified:    row.Bool("is_verified"),
		Category:    row.String("category"),
		Genre:       row.NullString("genre"),
		BaseRate:    nullFloat(row, "base_rate"),
		HourlyRate:  nullFloat(row, "hourly_rate"),
		Rating:      row.Float("rating"),
		ReviewCount: int(row.Int("review_count")),
		Trending:    row.Bool("is_trending"),
		Skills:      decodeList(ctx, row, "skills"),
	}
	if n, ok := row.NullInt("years_experience"); ok {
		years := int(n)
		p.YearsExperience = &years
	}
	return p
}

func shapeDetail(ctx context.Context, row db.Row) profile.Detail {
	return profile.Detail{
		Profile:            shapeProfile(ctx, row),
		FirstName:          row.NullString("first_name"),
		LastName:           row.NullString("last_name"),
		Email:              row.String("email"),
		Country:            row.NullString("country"),
		Phone:              row.NullString("phone"),
		TotalBookings:      int(row.Int("total_bookings")),
		PortfolioURLs:      decodeList(ctx, row, "portfolio_urls"),
		SocialLinks:        decodeMap(ctx, row, "social_links"),
		AvailabilityStatus: row.String("availability_status"),
		Services:           []profile.Service{},
	}
}

func shapeService(row db.Row) profile.Service {
	return profile.Service{
		ID:            row.String("id"),
		Name:          row.String("name"),
		Description:   row.NullString("description"),
		Price:         nullFloat(row, "price"),
		DurationHours: nullFloat(row, "duration_hours"),
	}
}

func nullFloat(row db.Row, col string) *float64 {
	f, ok := row.NullFloat(col)
	if !ok {
		return nil
	}
	return &f
}

// decodeList decodes a JSON string array column. NULL, empty and malformed
// values all give an empty (non-nil) list.
func decodeList(ctx context.Context, row db.Row, col string) []string {
	out := []string{}
	raw := row.String(col)
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		warnMalformed(ctx, row, col, err)
		return []string{}
	}
	return out
}

// decodeMap decodes a JSON object column with the same empty-on-failure rule.
func decodeMap(ctx context.Context, row db.Row, col string) map[string]string {
	out := map[string]string{}
	raw := row.String(col)
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		warnMalformed(ctx, row, col, err)
		return map[string]string{}
	}
	return out
}

func warnMalformed(ctx context.Context, row db.Row, col string, err error) {
	logger.FromContext(ctx).Warn("Malformed JSON column",
		zap.String("artist_id", row.String("artist_id")),
		zap.String("column", col),
		zap.Error(err),
	)
}
