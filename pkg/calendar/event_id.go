package calendar

import (
	"fmt"
	"strings"
)

// Domain tags the source of a derived (shadow) event.
type Domain string

const (
	DomainTodo        Domain = "todo"
	DomainTransaction Domain = "transaction"
	DomainNote        Domain = "note"
)

var knownDomains = []Domain{DomainTodo, DomainTransaction, DomainNote}

// EventID identifies an event. Native events carry an opaque id; derived
// events carry the source domain plus the source record's id, rendered as
// "{domain}-{id}" on the wire. Keeping the two cases in one tagged value
// avoids re-parsing prefixes out of strings everywhere.
type EventID struct {
	domain Domain // empty for native ids
	value  string
}

// NativeID wraps the id of a user-created event.
func NativeID(id string) EventID {
	return EventID{value: id}
}

// DerivedID builds the identity of the shadow event for a source record.
func DerivedID(domain Domain, sourceID string) EventID {
	return EventID{domain: domain, value: sourceID}
}

func (id EventID) IsZero() bool { return id.domain == "" && id.value == "" }

func (id EventID) IsDerived() bool { return id.domain != "" }

// Domain returns the source domain of a derived id, or "" for native ids.
func (id EventID) Domain() Domain { return id.domain }

// SourceID returns the source record id of a derived id, or "" for native ids.
func (id EventID) SourceID() string {
	if id.domain == "" {
		return ""
	}
	return id.value
}

func (id EventID) String() string {
	if id.domain != "" {
		return string(id.domain) + "-" + id.value
	}
	return id.value
}

// MarshalText renders the wire form, so EventID can sit directly in the
// persisted JSON and in DTOs.
func (id EventID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the wire form back. A known "{domain}-" prefix marks a
// derived id; anything else is native. Parsing happens only here, at the
// serialization boundary.
func (id *EventID) UnmarshalText(text []byte) error {
	s := string(text)
	for _, domain := range knownDomains {
		prefix := string(domain) + "-"
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			if rest == "" {
				return fmt.Errorf("derived event id %q has empty source id", s)
			}
			*id = DerivedID(domain, rest)
			return nil
		}
	}
	*id = NativeID(s)
	return nil
}
