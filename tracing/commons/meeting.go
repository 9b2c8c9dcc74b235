package commons

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidMeeting = errors.New("invalid meeting")

// Meeting is a directed contact: Infector may have passed the disease to
// Infected.
type Meeting struct {
	Infector ID
	Infected ID
	Distance float64
	Measure  float64
}

func NewMeeting(infector, infected ID, distance, measure float64) (*Meeting, error) {
	if distance <= 0 {
		return nil, errors.Wrapf(ErrInvalidMeeting, "distance %v", distance)
	}
	if measure < 0 {
		return nil, errors.Wrapf(ErrInvalidMeeting, "measure %v", measure)
	}
	if infector == infected {
		return nil, errors.Wrapf(ErrInvalidMeeting, "%d meets itself", infector)
	}
	return &Meeting{
		Infector: infector,
		Infected: infected,
		Distance: distance,
		Measure:  measure,
	}, nil
}

func CopyMeeting(m *Meeting) (*Meeting, error) {
	if m == nil {
		return nil, errors.Wrap(ErrInvalidMeeting, "nil meeting")
	}
	cp := *m
	return &cp, nil
}

func MeetingEquals(a, b *Meeting) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func FreeMeeting(m *Meeting) {
	if m != nil {
		*m = Meeting{}
	}
}

func (m Meeting) String() string {
	return fmt.Sprintf("%d->%d(d=%v,m=%v)", m.Infector, m.Infected, m.Distance, m.Measure)
}

// ParseMeeting reads an "infector infected distance measure" line.
func ParseMeeting(line string) (*Meeting, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return nil, errors.Wrapf(ErrInvalidMeeting, "line %q", line)
	}
	var ids [2]ID
	for i := range ids {
		id, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidMeeting, "id %q", fields[i])
		}
		ids[i] = ID(id)
	}
	distance, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidMeeting, "distance %q", fields[2])
	}
	measure, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidMeeting, "measure %q", fields[3])
	}
	return NewMeeting(ids[0], ids[1], distance, measure)
}
