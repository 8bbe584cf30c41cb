package punch

import (
	"time"
)

// ManualSource is the device serial carried by punches entered by an admin.
const ManualSource = "MANUAL"

// Punch is one clock event, either read from a vendor clock or entered manually.
type Punch struct {
	ID             *string // manual punches only
	EmployeeID     string
	PersonID       string
	Timestamp      time.Time
	DeviceSerial   string
	SequenceNumber *int64 // vendor NSR

	// Unparseable is set when the vendor timestamp could not be read. Raw keeps the text.
	Unparseable bool
	Raw         string
}

func (p Punch) IsManual() bool {
	return p.DeviceSerial == ManualSource
}

// ManualPunch is the persisted form of a manually entered punch.
type ManualPunch struct {
	ID         string
	EmployeeID string
	PersonID   *string
	Date       time.Time // calendar day, midnight UTC
	Time       string    // HH:MM
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ToPunch resolves the manual punch to an absolute instant in loc.
func (m ManualPunch) ToPunch(loc *time.Location) Punch {
	id := m.ID
	p := Punch{
		ID:           &id,
		EmployeeID:   m.EmployeeID,
		DeviceSerial: ManualSource,
	}
	if m.PersonID != nil {
		p.PersonID = *m.PersonID
	}
	ts, ok := CombineDateClock(m.Date.Format("2006-01-02"), m.Time, loc)
	if !ok {
		p.Unparseable = true
		p.Raw = m.Date.Format("2006-01-02") + " " + m.Time
		return p
	}
	p.Timestamp = ts
	return p
}

// IgnoredMarker excludes one punch from aggregation for an employee and day.
// Exactly one identity is set: ManualPunchID, or SequenceNumber with DeviceSerial.
type IgnoredMarker struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	ManualPunchID  *string
	SequenceNumber *int64
	DeviceSerial   *string
	CreatedBy      string
	CreatedAt      time.Time
}

// Matches reports whether the marker identifies p. Day scoping is the caller's concern.
func (m IgnoredMarker) Matches(p Punch) bool {
	if m.EmployeeID != p.EmployeeID {
		return false
	}
	if m.ManualPunchID != nil {
		return p.ID != nil && *p.ID == *m.ManualPunchID
	}
	if m.SequenceNumber != nil && m.DeviceSerial != nil {
		return p.SequenceNumber != nil && *p.SequenceNumber == *m.SequenceNumber && p.DeviceSerial == *m.DeviceSerial
	}
	return false
}
