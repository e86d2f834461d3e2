package calendar

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"eventplanner/internal/domain"
)

const productID = "-//eventplanner//event export//EN"

type icalRenderer struct {
	domain string
	now    func() time.Time
}

// NewICalRenderer returns a CalendarRenderer producing a single-VEVENT calendar. uidDomain qualifies event
// ids into globally unique UIDs.
func NewICalRenderer(uidDomain string) domain.CalendarRenderer {
	if uidDomain == "" {
		uidDomain = "eventplanner.local"
	}
	return &icalRenderer{domain: uidDomain, now: time.Now}
}

func (r *icalRenderer) Render(e *domain.Event, location string) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	ev := cal.AddEvent(e.ID + "@" + r.domain)
	ev.SetDtStampTime(r.now().UTC())
	if !e.CreatedAt.IsZero() {
		ev.SetCreatedTime(e.CreatedAt.UTC())
	}
	if !e.LastModified.IsZero() {
		ev.SetModifiedAt(e.LastModified.UTC())
	}
	ev.SetStartAt(e.StartTime.UTC())
	ev.SetEndAt(e.EndTime.UTC())
	ev.SetSummary(e.Name)
	if desc := description(e); desc != "" {
		ev.SetDescription(desc)
	}
	if location != "" {
		ev.SetLocation(location)
	}
	ev.SetProperty(ical.ComponentPropertyStatus, status(e.Status))

	return []byte(cal.Serialize()), nil
}

func description(e *domain.Event) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(e.Slogan); s != "" {
		parts = append(parts, s)
	}
	if d := strings.TrimSpace(e.Description); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, "\n\n")
}

func status(s domain.EventStatus) string {
	if s == domain.StatusDraft {
		return "TENTATIVE"
	}
	return "CONFIRMED"
}
