package tracing

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/tuannh982/spreader-detector/tracing/commons"
	"github.com/tuannh982/spreader-detector/utils/collections"
)

var (
	ErrPersonExists  = errors.New("person already exists")
	ErrUnknownPerson = errors.New("unknown person")
)

type meetingList = collections.Vector[*commons.Meeting]

// SpreaderDetector keeps the people and the meetings between them and
// derives from them everyone's chance of having been infected by the
// spreader.
type SpreaderDetector struct {
	params Params
	// persistent info
	people      *collections.HashMap[commons.ID, *commons.Person]
	ids         []commons.ID
	meetings    *collections.HashMap[commons.ID, *meetingList]
	numMeetings int
	// container settings
	containerOpts []collections.Option
	// log
	log *log.Entry
}

type Option func(*SpreaderDetector)

func WithLogger(logger *log.Entry) Option {
	return func(sd *SpreaderDetector) {
		sd.log = logger
	}
}

// WithContainerOptions configures every container the detector creates.
func WithContainerOptions(opts ...collections.Option) Option {
	return func(sd *SpreaderDetector) {
		sd.containerOpts = append(sd.containerOpts, opts...)
	}
}

func New(params Params, opts ...Option) (*SpreaderDetector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	sd := &SpreaderDetector{
		params: params,
		ids:    make([]commons.ID, 0),
		log:    log.WithField("component", "spreader-detector"),
	}
	for _, opt := range opts {
		opt(sd)
	}
	sd.containerOpts = append(sd.containerOpts, collections.WithLogger(sd.log))
	people, err := collections.NewComparableHashMap[commons.ID, *commons.Person](commons.IDHash, sd.containerOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "create people index")
	}
	meetings, err := collections.NewComparableHashMap[commons.ID, *meetingList](commons.IDHash, sd.containerOpts...)
	if err != nil {
		people.Destroy()
		return nil, errors.Wrap(err, "create meetings index")
	}
	sd.people = people
	sd.meetings = meetings
	return sd, nil
}

// Close releases every container. The detector must not be used afterwards.
func (sd *SpreaderDetector) Close() {
	if sd.meetings != nil {
		sd.meetings.ForEach(func(_ commons.ID, list *meetingList) bool {
			list.Destroy()
			return true
		})
		sd.meetings.Destroy()
	}
	sd.people.Destroy()
	sd.ids = nil
	sd.numMeetings = 0
}

func (sd *SpreaderDetector) NumPeople() int {
	return sd.people.Size()
}

func (sd *SpreaderDetector) NumMeetings() int {
	return sd.numMeetings
}

func (sd *SpreaderDetector) AddPerson(p *commons.Person) error {
	if p == nil {
		return errors.Wrap(commons.ErrInvalidPerson, "nil person")
	}
	if sd.people.ContainsKey(p.ID) {
		return errors.Wrapf(ErrPersonExists, "id %d", p.ID)
	}
	pair := collections.NewPair(p.ID, p, collections.Equal[commons.ID], commons.PersonEquals)
	if err := sd.people.Insert(pair); err != nil {
		return errors.Wrapf(err, "add person %d", p.ID)
	}
	i, _ := slices.BinarySearch(sd.ids, p.ID)
	sd.ids = slices.Insert(sd.ids, i, p.ID)
	return nil
}

// AddMeeting records a copy of m. Both people must already be known.
func (sd *SpreaderDetector) AddMeeting(m *commons.Meeting) error {
	if m == nil {
		return errors.Wrap(commons.ErrInvalidMeeting, "nil meeting")
	}
	for _, id := range []commons.ID{m.Infector, m.Infected} {
		if !sd.people.ContainsKey(id) {
			return errors.Wrapf(ErrUnknownPerson, "meeting %s: id %d", m, id)
		}
	}
	if list, ok := sd.meetings.Lookup(m.Infector); ok {
		if err := list.PushBack(m); err != nil {
			return errors.Wrapf(err, "add meeting %s", m)
		}
		sd.numMeetings++
		return nil
	}
	list, err := collections.NewVector(commons.CopyMeeting, commons.MeetingEquals, commons.FreeMeeting, sd.containerOpts...)
	if err != nil {
		return errors.Wrapf(err, "add meeting %s", m)
	}
	if err = list.PushBack(m); err == nil {
		err = sd.meetings.Insert(collections.NewComparablePair(m.Infector, list))
	}
	if err != nil {
		list.Destroy()
		return errors.Wrapf(err, "add meeting %s", m)
	}
	sd.numMeetings++
	return nil
}

// ReadPeople adds one person per line until the input or the first blank
// line ends. Lines that do not describe a new valid person are skipped.
func (sd *SpreaderDetector) ReadPeople(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		p, err := commons.ParsePerson(line)
		if err == nil {
			err = sd.AddPerson(p)
		}
		if err != nil {
			if errors.Is(err, collections.ErrAllocationFailed) {
				return err
			}
			sd.log.WithError(err).WithField("line", lineNo).Warn("skip person")
		}
	}
	return errors.Wrap(scanner.Err(), "read people")
}

// ReadMeetings adds one meeting per non-blank line. Lines that are
// malformed or name unknown people are skipped.
func (sd *SpreaderDetector) ReadMeetings(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		m, err := commons.ParseMeeting(line)
		if err == nil {
			err = sd.AddMeeting(m)
		}
		if err != nil {
			if errors.Is(err, collections.ErrAllocationFailed) {
				return err
			}
			sd.log.WithError(err).WithField("line", lineNo).Warn("skip meeting")
		}
	}
	return errors.Wrap(scanner.Err(), "read meetings")
}

func (sd *SpreaderDetector) InfectionRate(id commons.ID) (float64, error) {
	p, ok := sd.people.Lookup(id)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownPerson, "id %d", id)
	}
	return p.InfectionRate, nil
}

// exposure is a meeting still to be walked, with the rate of its infector.
type exposure struct {
	meeting *commons.Meeting
	rate    float64
}

// CalculateInfectionChances resets every rate, gives the first sick person
// in id order the spreader rate and propagates it depth-first along the
// meetings, in the order they were added. Everyone is reached at most once.
func (sd *SpreaderDetector) CalculateInfectionChances() error {
	sd.people.ForEach(func(_ commons.ID, p *commons.Person) bool {
		p.InfectionRate = 0
		return true
	})
	spreader := sd.findSpreader()
	if spreader == nil {
		sd.log.Info("no sick person, every rate stays 0")
		return nil
	}
	spreader.InfectionRate = SpreaderInfectionRate
	visited, err := collections.NewHashSet(commons.IDHash, collections.Equal[commons.ID], sd.containerOpts...)
	if err != nil {
		return err
	}
	defer visited.Destroy()
	pending, err := collections.NewStack[exposure](sd.containerOpts...)
	if err != nil {
		return err
	}
	defer pending.Destroy()
	if err = visited.Add(spreader.ID); err != nil {
		return err
	}
	if err = sd.pushExposures(pending, spreader); err != nil {
		return err
	}
	for pending.Size() > 0 {
		e, err := pending.Pop()
		if err != nil {
			return err
		}
		if visited.Contains(e.meeting.Infected) {
			continue
		}
		if err = visited.Add(e.meeting.Infected); err != nil {
			return err
		}
		person, err := sd.people.At(e.meeting.Infected)
		if err != nil {
			return err
		}
		person.InfectionRate = sd.params.InfectionRate(e.meeting, person, e.rate)
		if err = sd.pushExposures(pending, person); err != nil {
			return err
		}
	}
	sd.log.WithFields(log.Fields{"spreader": spreader.ID, "reached": visited.Size()}).Debug("infection chances calculated")
	return nil
}

// pushExposures pushes the meetings of p in reverse, so that they are
// popped in the order they were added.
func (sd *SpreaderDetector) pushExposures(pending collections.Stack[exposure], p *commons.Person) error {
	list, ok := sd.meetings.Lookup(p.ID)
	if !ok {
		return nil
	}
	for i := list.Size() - 1; i >= 0; i-- {
		m, err := list.At(i)
		if err != nil {
			return err
		}
		if err = pending.Push(exposure{meeting: m, rate: p.InfectionRate}); err != nil {
			return err
		}
	}
	return nil
}

func (sd *SpreaderDetector) findSpreader() *commons.Person {
	for _, id := range sd.ids {
		if p, ok := sd.people.Lookup(id); ok && p.Sick {
			return p
		}
	}
	return nil
}

// WriteTreatments writes the recommended treatment of every person, in id
// order, as "<treatment> <name> <id> <age> <rate>".
func (sd *SpreaderDetector) WriteTreatments(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, id := range sd.ids {
		p, err := sd.people.At(id)
		if err != nil {
			return err
		}
		treatment := sd.params.Treatment(p.InfectionRate)
		if _, err = fmt.Fprintf(bw, "%s %s %d %d %f\n", treatment, p.Name, p.ID, p.Age, p.InfectionRate); err != nil {
			return errors.Wrapf(err, "write treatment of %d", id)
		}
	}
	return errors.Wrap(bw.Flush(), "flush treatments")
}
