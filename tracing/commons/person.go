package commons

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tuannh982/spreader-detector/utils/collections"
)

type ID uint64

const SickMark = "SICK"

var ErrInvalidPerson = errors.New("invalid person")

type Person struct {
	ID            ID
	Name          string
	Age           uint64
	Sick          bool
	InfectionRate float64
}

func NewPerson(id ID, name string, age uint64, sick bool) (*Person, error) {
	if name == "" {
		return nil, errors.Wrapf(ErrInvalidPerson, "person %d has no name", id)
	}
	return &Person{
		ID:   id,
		Name: name,
		Age:  age,
		Sick: sick,
	}, nil
}

func IDHash(id ID) uint64 {
	return collections.HashUint64(uint64(id))
}

// PersonEquals compares people by id.
func PersonEquals(a, b *Person) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.ID == b.ID
}

func (p Person) String() string {
	return fmt.Sprintf("%s(%d)", p.Name, p.ID)
}

// ParsePerson reads a "name id age [SICK]" line.
func ParsePerson(line string) (*Person, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || len(fields) > 4 {
		return nil, errors.Wrapf(ErrInvalidPerson, "line %q", line)
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPerson, "id %q", fields[1])
	}
	age, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPerson, "age %q", fields[2])
	}
	sick := false
	if len(fields) == 4 {
		if fields[3] != SickMark {
			return nil, errors.Wrapf(ErrInvalidPerson, "unknown mark %q", fields[3])
		}
		sick = true
	}
	return NewPerson(ID(id), fields[0], age, sick)
}
